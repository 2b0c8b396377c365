package helper

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	usernameChars = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
	hasLetter     = regexp.MustCompile(`[A-Za-z]`)
	hasNumber     = regexp.MustCompile(`[0-9]`)
)

// Validate dipakai bersama oleh DTO request. Nama field di error mengikuti tag json.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	// username dipakai sebagai key store: tanpa spasi dan '/'
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameChars.MatchString(fl.Field().String())
	})
	// minimal satu huruf dan satu angka
	_ = v.RegisterValidation("alphanum_mix", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return hasLetter.MatchString(s) && hasNumber.MatchString(s)
	})
	return v
}

// ValidationMessages mengubah error validator.v10 menjadi map field → pesan.
// ok=false kalau err bukan validator.ValidationErrors.
func ValidationMessages(err error) (map[string][]string, bool) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, false
	}

	out := make(map[string][]string, len(ve))
	for _, fieldErr := range ve {
		field := fieldErr.Field()
		var msg string
		switch fieldErr.Tag() {
		case "required":
			msg = field + " wajib diisi."
		case "email":
			msg = "Format email tidak valid."
		case "min":
			msg = field + " harus minimal " + fieldErr.Param() + " karakter."
		case "max":
			msg = field + " harus kurang dari " + fieldErr.Param() + " karakter."
		case "len":
			msg = field + " harus " + fieldErr.Param() + " karakter."
		case "numeric":
			msg = field + " harus berupa angka."
		case "alphanum":
			msg = field + " hanya boleh huruf dan angka."
		case "username":
			msg = field + " hanya boleh huruf, angka, titik, strip dan garis bawah."
		case "alphanum_mix":
			msg = field + " harus mengandung huruf dan angka."
		default:
			msg = "Format tidak valid."
		}
		out[field] = append(out[field], msg)
	}
	return out, true
}
