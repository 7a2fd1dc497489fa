package httpx

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/rs/cors"
)

// CORS builds a CORS middleware from a list of origin regexps. An empty
// list allows no cross-origin callers.
func CORS(originPatterns []string) (Middleware, error) {
	compiled := make([]*regexp.Regexp, 0, len(originPatterns))
	for _, pattern := range originPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("httpx: invalid origin pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}

	c := cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			for _, re := range compiled {
				if re.MatchString(origin) {
					return true
				}
			}
			return false
		},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept"},
		AllowCredentials: true,
	})

	return c.Handler, nil
}
