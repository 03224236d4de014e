package http

import "github.com/go-playground/validator/v10"

// validate instancia compartida del validador; las reglas viven en los tags
// de los DTOs.
var validate = validator.New()
