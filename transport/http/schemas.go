package http

import (
	"regexp"

	"github.com/qlap/traingate/core"
	"github.com/qlap/traingate/schema"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9 \-]{6,20}$`)
)

var registerSchema = schema.Schema{
	"first_name":   {Type: schema.String, Required: true, MinLen: 1, MaxLen: 100},
	"last_name":    {Type: schema.String, Required: true, MinLen: 1, MaxLen: 100},
	"phone_number": {Type: schema.String, Required: true, Pattern: phonePattern},
	"email":        {Type: schema.String, Required: true, MaxLen: 255, Pattern: emailPattern},
	"password":     {Type: schema.String, Required: true, MinLen: 6, WriteOnly: true},
	"role":         {Type: schema.Integer, Required: true, Min: schema.Num(1), Max: schema.Num(2)},
	"gdpr_consent": {Type: schema.Boolean, Required: true},
}

var loginSchema = schema.Schema{
	"email":    {Type: schema.String, Required: true, Pattern: emailPattern},
	"password": {Type: schema.String, Required: true, WriteOnly: true},
}

var refreshSchema = schema.Schema{
	"refresh_token": {Type: schema.String, Required: true, MinLen: 1},
}

var updateProfileSchema = schema.Schema{
	"first_name":   {Type: schema.String, MinLen: 1, MaxLen: 100},
	"last_name":    {Type: schema.String, MinLen: 1, MaxLen: 100},
	"phone_number": {Type: schema.String, Pattern: phonePattern},
	"email":        {Type: schema.String, MaxLen: 255, Pattern: emailPattern},
}

var changePasswordSchema = schema.Schema{
	"new_password": {Type: schema.String, Required: true, MinLen: 6, WriteOnly: true},
}

// userSchema is the output shape of an account. The password hash is not
// declared and therefore can never appear in a response.
var userSchema = schema.Schema{
	"id":           {Type: schema.String, ReadOnly: true},
	"first_name":   {Type: schema.String},
	"last_name":    {Type: schema.String},
	"phone_number": {Type: schema.String},
	"email":        {Type: schema.String},
	"role":         {Type: schema.Integer},
	"created_at":   {Type: schema.Date, ReadOnly: true},
}

func dumpUser(u *core.User) map[string]any {
	return userSchema.Dump(map[string]any{
		"id":           u.ID,
		"first_name":   u.FirstName,
		"last_name":    u.LastName,
		"phone_number": u.PhoneNumber,
		"email":        u.Email,
		"role":         int64(u.Role),
		"created_at":   u.CreatedAt,
	})
}

func dumpUsers(users []core.User) []map[string]any {
	out := make([]map[string]any, 0, len(users))
	for i := range users {
		out = append(out, dumpUser(&users[i]))
	}
	return out
}
