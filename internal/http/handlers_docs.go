package httpx

import "net/http"

const docsPage = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>API Docs - Member Portal</title>
</head>
<body>
<h1>Member Portal API</h1>
<p>The OpenAPI document is served at <a href="/openapi.json">/openapi.json</a>.</p>
</body>
</html>
`

// Docs serves a minimal documentation page pointing at the OpenAPI document.
func Docs(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(docsPage))
}

// OpenAPI serves the embedded OpenAPI document.
func OpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(openapiJSON)
}
