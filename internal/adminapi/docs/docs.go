// Package docs registers the admin API's swagger spec with swaggo/swag
// so /swagger/*any can serve it through gin-swagger, following the
// shape `swag init` itself generates — authored by hand here since the
// toolchain that would normally run `swag init` isn't invoked as part
// of this build.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": [],
    "swagger": "2.0",
    "info": {
        "title": "gurtd admin API",
        "description": "Operational surface for gurtd: health, runtime stats, and read-only debug introspection.",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "paths": {
        "/healthz": { "get": { "tags": ["system"], "summary": "Liveness check", "responses": { "200": { "description": "OK" } } } },
        "/debug/stats": { "get": { "tags": ["system"], "summary": "Runtime statistics", "responses": { "200": { "description": "OK" } } } },
        "/debug/index": { "get": { "tags": ["debug"], "summary": "Raw index search", "responses": { "200": { "description": "OK" } } } },
        "/debug/authority": { "get": { "tags": ["debug"], "summary": "Link authority snapshot", "responses": { "200": { "description": "OK" } } } }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds the spec swag.Register exposes to gin-swagger, in
// the same shape `swag init` emits into internal/api/docs in the
// teacher's build.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "gurtd admin API",
	Description:      "Operational surface for gurtd: health, runtime stats, and read-only debug introspection.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
