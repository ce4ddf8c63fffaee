// Package openapi embeds the REST contract of the service. The document is
// served by swagger UI at /swagger/ and parsed with kin-openapi.
package openapi

import (
	_ "embed"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.json
var document []byte

// SwaggerInfo registers the document under the default swag instance name,
// which is the one echo-swagger reads.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	BasePath:         "/",
	Title:            "Logistics marketplace API",
	Description:      "Delivery lifecycle and escrow settlement.",
	InfoInstanceName: swag.Name,
	SwaggerTemplate:  string(document),
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// GetSwagger parses the embedded document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	return loader.LoadFromData(document)
}
