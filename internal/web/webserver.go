// Package web provides the HTTP server and web interface for go-medhub
package web

/*

	### **Core Files:**
	1. **`webserver_core_routes.go`** - Server setup, middleware chain, route configuration, start/shutdown
	2. **`web_utils.go`** - Envelope writers, query parsing, error rendering

	### **Page Handler Files:**
	3. **`web_staticPages.go`** - Root/admin pages and the css/js/uploads file handlers
	4. **`embedded_static.go`** - Fallback 404/500 pages

	### **API File:**
	5. **`web_apiHandlers.go`** - All REST API endpoints that return JSON

	### **Middleware File:**
	6. **`web_middleware.go`** - Request ids, access logging, panic recovery

*/
