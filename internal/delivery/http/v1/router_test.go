package v1

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"alumni-network-backend/config"
	"alumni-network-backend/docs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ginParam = regexp.MustCompile(`:(\w+)`)

func TestSwaggerDocumentsEveryRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterDeps{Config: &config.Config{}})

	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))
	require.Equal(t, "/v1", doc.BasePath)

	documented := 0
	for _, route := range r.Routes() {
		if strings.HasPrefix(route.Path, "/v1/swagger") {
			continue
		}
		path := ginParam.ReplaceAllString(strings.TrimPrefix(route.Path, doc.BasePath), "{$1}")
		ops, ok := doc.Paths[path]
		if !assert.True(t, ok, "undocumented path %s", path) {
			continue
		}
		assert.Contains(t, ops, strings.ToLower(route.Method), "undocumented %s %s", route.Method, path)
		documented++
	}
	assert.Greater(t, documented, 50)
}
