package mailer

import (
	"embed"
	htmltpl "html/template"
	"strings"
	texttpl "text/template"
)

//go:embed templates/*
var templateFS embed.FS

var (
	welcomeHTML = htmltpl.Must(htmltpl.ParseFS(templateFS, "templates/welcome.html"))
	welcomeText = texttpl.Must(texttpl.ParseFS(templateFS, "templates/welcome.txt"))
)

// Welcome is the access-key email sent on registration and on key rotation.
type Welcome struct {
	To         string
	AdminEmail string
	FullName   string
	Role       string
	AccessKey  string
	// Rotated marks a replacement key for an existing account.
	Rotated bool
	// Pending marks an account that awaits admin verification.
	Pending bool
}

func (w Welcome) Subject() string {
	if w.Rotated {
		return "FSTI HUB - Nouveau code d'accès"
	}
	return "FSTI HUB - Inscription " + strings.ToUpper(w.Role) + " Confirmée"
}

// RoleLabel is used by the templates.
func (w Welcome) RoleLabel() string {
	switch w.Role {
	case "talent":
		return "talent"
	case "coach":
		return "coach"
	case "recruiter":
		return "recruteur"
	default:
		return w.Role
	}
}

// Recipients lists the registrant and, when set and different, the admin copy.
func (w Welcome) Recipients() []string {
	out := []string{strings.TrimSpace(w.To)}
	admin := strings.TrimSpace(w.AdminEmail)
	if admin != "" && !strings.EqualFold(admin, out[0]) {
		out = append(out, admin)
	}
	return out
}
