package core

import "github.com/gin-gonic/gin"

// respondKO sends the authentication failure envelope {"result":"KO","message":...}.
func respondKO(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"result": "KO", "message": message})
}

// respondNO sends the business failure envelope {"result":"NO","msg":...}.
// The two envelopes are distinct on purpose: existing clients key on them.
func respondNO(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"result": "NO", "msg": msg})
}
