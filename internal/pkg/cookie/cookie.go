package cookie

import (
	"github.com/gin-gonic/gin"
)

// AccessTokenCookieName is the cookie browsers carry the bearer credential in
// when the Authorization header is not set.
const AccessTokenCookieName = "access_token"

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
