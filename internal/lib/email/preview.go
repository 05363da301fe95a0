package email

// PreviewData contains sample template data for local preview/testing.
//
//	PreviewData["welcome"]["UserName"] == "Ada Lovelace"
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserName": "Ada Lovelace",
	},
}
