package httpx

import "embed"

//go:embed templates
var templateFS embed.FS

//go:embed openapi.json
var openapiJSON []byte
