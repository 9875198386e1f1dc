package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr error
	}{
		{in: "courseTypes", want: KindCourseType},
		{in: "course-type", want: KindCourseType},
		{in: "courses", want: KindCourse},
		{in: "course", want: KindCourse},
		{in: "offerings", want: KindOffering},
		{in: "registration", want: KindRegistration},
		{in: "reg", want: KindRegistration},
		{in: "students", wantErr: ErrUnknownKind},
		{in: "", wantErr: ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "course type", KindCourseType.Label())
	assert.Equal(t, "registration", KindRegistration.Label())
	assert.Equal(t, "widgets", Kind("widgets").Label())
	assert.False(t, Kind("widgets").Valid())
}

func TestForeignKeys(t *testing.T) {
	assert.Nil(t, CourseType{ID: "ct"}.ForeignKeys())
	assert.Nil(t, Course{ID: "c"}.ForeignKeys())
	assert.Equal(t,
		map[Kind]string{KindCourse: "c", KindCourseType: "ct"},
		Offering{ID: "o", CourseID: "c", CourseTypeID: "ct"}.ForeignKeys())
	assert.Equal(t,
		map[Kind]string{KindOffering: "o"},
		Registration{ID: "r", OfferingID: "o"}.ForeignKeys())
}

func TestRegistrationInputNormalize(t *testing.T) {
	in := RegistrationInput{
		OfferingID: "  off-1 ",
		Name:       "  Asha Rao  ",
		Email:      "  Asha.Rao@Example.COM ",
	}
	got := in.Normalize()
	assert.Equal(t, RegistrationInput{OfferingID: "off-1", Name: "Asha Rao", Email: "asha.rao@example.com"}, got)
}

func TestNameInputNormalize(t *testing.T) {
	assert.Equal(t, "Group", CourseTypeInput{Name: "  Group\t"}.Normalize().Name)
	assert.Equal(t, "Hindi", CourseInput{Name: "\nHindi "}.Normalize().Name)
	assert.Equal(t,
		OfferingInput{CourseID: "c1", CourseTypeID: "t1"},
		OfferingInput{CourseID: " c1", CourseTypeID: "t1 "}.Normalize())
}
