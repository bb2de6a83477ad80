package respond

import (
	"regexp"
)

var (
	// Bearer トークン(JWT を含む)のマスク
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9-_.]+`)
	jwtPattern    = regexp.MustCompile(`eyJ[a-zA-Z0-9-_]+\.[a-zA-Z0-9-_]+\.[a-zA-Z0-9-_]+`)

	// DSN 内のデータベースパスワード
	dbPasswordPattern = regexp.MustCompile(`://([^:]+):([^@]+)@`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	msg = jwtPattern.ReplaceAllString(msg, "****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")

	return msg
}
