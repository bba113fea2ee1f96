package validation

func CustomMessage(field string) map[string]string {
	var customValidationMessages = map[string]map[string]string{
		"Email": {
			"required": "email is required",
			"email":    "email must be a valid email address",
		},
		"Password": {
			"required": "password is required",
			"min":      "password must be at least 6 characters",
		},
		"NewPassword": {
			"required": "new password is required",
			"min":      "new password must be at least 6 characters",
		},
		"Name": {
			"required": "name is required",
		},
		"Token": {
			"required": "token is required",
		},
		"Key": {
			"required": "key is required",
		},
		"Value": {
			"required": "value is required",
		},
		"Type": {
			"required": "type is required",
			"oneof":    "type must be one of URL, TEXT, NUMBER, BOOLEAN, JSON",
		},
		"Role": {
			"oneof": "role must be ADMIN or CLIENT",
		},
		"Message": {
			"required": "message is required",
		},
	}
	return customValidationMessages[field]
}
