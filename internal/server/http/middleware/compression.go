package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MaxDecompressedBody caps the size of an inflated request body.
const MaxDecompressedBody = 4 << 20

type gzipBody struct {
	*gzip.Reader
	source interface{ Close() error }
}

func (b gzipBody) Close() error {
	_ = b.Reader.Close()
	return b.source.Close()
}

// DecompressRequest inflates gzip encoded request bodies. Other content
// encodings are refused with 415.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		encoding := strings.ToLower(strings.TrimSpace(c.GetHeader("Content-Encoding")))
		switch encoding {
		case "", "identity":
			c.Next()
			return
		case "gzip", "x-gzip":
		default:
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{"error": "unsupported content encoding"})
			return
		}

		reader, err := gzip.NewReader(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed gzip body"})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, gzipBody{Reader: reader, source: c.Request.Body}, MaxDecompressedBody)
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}
