package middleware

import (
	"net/http"
	"strings"
)

const (
	methodOverrideParam  = "_method"
	methodOverrideHeader = "X-HTTP-Method-Override"
)

var overridableMethods = map[string]bool{
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// MethodOverride lets an HTML form POST stand in for PUT, PATCH or DELETE.
// The target method is read from the X-HTTP-Method-Override header, the
// _method query parameter or the _method form field, in that order.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			method := r.Header.Get(methodOverrideHeader)
			if method == "" {
				method = r.URL.Query().Get(methodOverrideParam)
			}
			if method == "" && isForm(r) {
				method = r.PostFormValue(methodOverrideParam)
			}

			method = strings.ToUpper(method)
			if overridableMethods[method] {
				r.Method = method
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isForm(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}
