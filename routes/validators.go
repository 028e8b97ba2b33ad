package routes

import (
	"log"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"hotel-marketplace/models"
)

// registerValidators adds the binding tags used by the service inputs.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		log.Println("⚠️  gin validator engine is not go-playground/validator; custom tags unavailable")
		return
	}
	mustRegister(v, "updatefreq", func(fl validator.FieldLevel) bool {
		return models.IsValidUpdateFrequency(fl.Field().String())
	})
	mustRegister(v, "hotelstatus", func(fl validator.FieldLevel) bool {
		return models.IsValidHotelStatus(fl.Field().String())
	})
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		log.Fatalf("❌ register validator %s: %v", tag, err)
	}
}
