package customer

import "regexp"

var rePhone = regexp.MustCompile(`^\d{10}$`)
