package handler

import (
	"net/http"
	"reflect"

	"github.com/Diegosuar/control-gastos-alpha-style/internal/apierror"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps the apperr taxonomy to HTTP statuses. Unclassified errors
// become 500s with a generic message so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	switch kind {
	case apperr.Validation, apperr.CarritoVacio, apperr.CategoriaDesconocida:
		c.JSON(http.StatusBadRequest, apierror.NewKind(kind.String(), err.Error()))
	case apperr.StockInsuficiente, apperr.Conflicto:
		c.JSON(http.StatusConflict, apierror.NewKind(kind.String(), err.Error()))
	case apperr.NoEncontrado:
		c.JSON(http.StatusNotFound, apierror.NewKind(kind.String(), err.Error()))
	case apperr.Commit:
		c.JSON(http.StatusInternalServerError, apierror.NewKind(kind.String(), "No se pudo confirmar la operacion"))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}
