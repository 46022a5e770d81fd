package pets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPetFormValidate(t *testing.T) {
	cases := []struct {
		name string
		form PetForm
		want string
	}{
		{"válido", PetForm{Name: "Luna", Species: "dog"}, ""},
		{"sin nombre", PetForm{Species: "dog"}, "Pet name is required"},
		{"sin especie", PetForm{Name: "Luna"}, "Species is required"},
		{"edad no numérica", PetForm{Name: "Luna", Species: "dog", Age: "tres"}, "Age must be a number"},
		{"edad numérica", PetForm{Name: "Luna", Species: "dog", Age: "3"}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.form.Validate())
		})
	}
}

func TestPetFormInputFilePrecedence(t *testing.T) {
	f := PetForm{
		Name:      "Luna",
		Species:   "dog",
		ImageURL:  "https://example.com/luna.jpg",
		ImageName: "luna.png",
		ImageData: []byte("bytes"),
	}

	in := f.Input()
	assert.Equal(t, []byte("bytes"), in.ImageData)
	assert.Equal(t, "luna.png", in.ImageName)
	assert.Empty(t, in.ImageURL, "la URL no debe viajar si hay archivo")
}

func TestPetFormInputURLFallback(t *testing.T) {
	f := PetForm{Name: "Luna", Species: "dog", ImageURL: "https://example.com/luna.jpg"}

	in := f.Input()
	assert.Equal(t, "https://example.com/luna.jpg", in.ImageURL)
	assert.Empty(t, in.ImageData)
}

func TestPetFormInputParsesAge(t *testing.T) {
	in := PetForm{Name: "Luna", Species: "dog", Age: "4"}.Input()
	require.NotNil(t, in.Age)
	assert.Equal(t, 4, *in.Age)

	in = PetForm{Name: "Luna", Species: "dog"}.Input()
	assert.Nil(t, in.Age)
}
