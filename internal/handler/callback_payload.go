package handler

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"printpay/internal/service"
)

// maxMultipartMemory caps in-memory parsing of multipart callbacks; gateway
// payloads are a few hundred bytes.
const maxMultipartMemory = 1 << 20

var errEmptyBody = errors.New("empty callback body")

// parseCallbackBody flattens a JSON, urlencoded or multipart webhook body.
// Some gateways post multipart/form-data, so all three are accepted on the
// same route.
func parseCallbackBody(c *gin.Context) (service.CallbackFields, error) {
	switch c.ContentType() {
	case binding.MIMEJSON:
		return decodeJSONBody(c)
	case binding.MIMEMultipartPOSTForm:
		if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, err
		}
		return service.FieldsFromValues(c.Request.MultipartForm.Value), nil
	default:
		if err := c.Request.ParseForm(); err != nil {
			return nil, err
		}
		return service.FieldsFromValues(c.Request.PostForm), nil
	}
}

// decodeJSONBody keeps numbers as json.Number: gateways send invoice numbers
// wider than float64 can hold, and they become document ids.
func decodeJSONBody(c *gin.Context) (service.CallbackFields, error) {
	if c.Request.Body == nil {
		return nil, errEmptyBody
	}
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	var body map[string]interface{}
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, errEmptyBody
	}
	return service.CallbackFields(body), nil
}
