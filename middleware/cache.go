package middleware

import (
	"bytes"
	"crypto/sha1"
	"encoding/gob"
	"encoding/hex"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type cachedBody struct {
	Status int
	Header map[string][]string
	Body   []byte
}

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// CacheKeyFrom derives the redis key and its namespace ("list", "item") for
// a request. Only GET requests on event routes are cacheable; everything
// else yields an empty key.
func CacheKeyFrom(c *gin.Context) (string, string) {
	method := c.Request.Method
	path := c.FullPath()
	rawQuery := c.Request.URL.RawQuery

	if method != "GET" || path == "" {
		return "", ""
	}

	switch {
	case strings.HasPrefix(path, "/api/v1/events/:id"):
		id := c.Param("id")
		return "cache:events:item:" + sha1Hex("GET|/api/v1/events/"+id), "item"
	case strings.HasPrefix(path, "/api/v1/events"):
		return "cache:events:list:" + sha1Hex("GET|/api/v1/events|"+rawQuery), "list"
	default:
		return "", ""
	}
}

// ResponseCache serves cached 2xx responses for public event reads from
// redis. Mutations purge the keys through utils.CacheInvalidator; a nil
// redis client disables caching entirely.
func ResponseCache(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}
		key, _ := CacheKeyFrom(c)
		if key == "" {
			c.Next()
			return
		}

		if b, err := rdb.Get(c.Request.Context(), key).Bytes(); err == nil && len(b) > 0 {
			var hit cachedBody
			if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&hit); err == nil {
				for k, vals := range hit.Header {
					for _, v := range vals {
						c.Writer.Header().Add(k, v)
					}
				}
				c.Writer.Header().Set("X-Cache", "HIT")
				c.Status(hit.Status)
				_, _ = c.Writer.Write(hit.Body)
				c.Abort()
				return
			}
		}

		// Miss: capture the response while it is written out
		buf := &bytes.Buffer{}
		bw := &bufferedWriter{ResponseWriter: c.Writer, buf: buf}
		c.Writer = bw
		c.Writer.Header().Set("X-Cache", "MISS")

		c.Next()

		// Only 2xx responses are cached
		if bw.Status() >= 200 && bw.Status() < 300 {
			item := cachedBody{
				Status: bw.Status(),
				Header: c.Writer.Header(),
				Body:   buf.Bytes(),
			}
			var encoded bytes.Buffer
			if err := gob.NewEncoder(&encoded).Encode(item); err == nil {
				_ = rdb.Set(c.Request.Context(), key, encoded.Bytes(), ttl).Err()
			}
		}
	}
}

type bufferedWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}
