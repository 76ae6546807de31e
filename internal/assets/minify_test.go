package assets

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var static = fstest.MapFS{
	"css/style.css": {Data: []byte("body {\n  color : red ;\n}\n")},
	"js/main.js":    {Data: []byte("function add ( a, b ) {\n  return a + b ;\n}\n")},
	"robots.txt":    {Data: []byte("User-agent: *\n")},
}

func TestMinify(t *testing.T) {
	b, err := Minify(static)
	require.NoError(t, err)
	require.Equal(t, 2, b.Len())
	require.Equal(t, "body{color:red}", string(b.files["css/style.css"].data))
	require.NotContains(t, string(b.files["js/main.js"].data), "\n  ")
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	b, err := Minify(static)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/static/*filepath", b.Handler(static))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/css/style.css", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "body{color:red}", w.Body.String())
	require.Contains(t, w.Header().Get("Content-Type"), "text/css")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/robots.txt", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "User-agent: *\n", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/missing.css", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}
