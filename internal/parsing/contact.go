package parsing

import (
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// contactWindow is how many leading lines are searched for contact details.
const contactWindow = 5

// ExtractContactInfo scans the first few lines for contact details. For each
// field the first match wins. The name is the first short line carrying no
// email, phone or LinkedIn match; the location comes from a comma-bearing
// line with no such match.
func ExtractContactInfo(lines []string) types.ContactInfo {
	var info types.ContactInfo

	for i, line := range lines {
		if i >= contactWindow {
			break
		}

		email := Email(line)
		phone := Phone(line)
		linkedin := LinkedInHandle(line)

		if info.Email == "" {
			info.Email = email
		}
		if info.Phone == "" {
			info.Phone = phone
		}
		if info.LinkedIn == "" {
			info.LinkedIn = linkedin
		}

		if email != "" || phone != "" || linkedin != "" {
			continue
		}

		if info.Name == "" && len(line) < 50 {
			info.Name = line
		}
		if info.Location == "" && strings.Contains(line, ",") {
			info.Location = Location(line)
		}
	}

	return info
}
