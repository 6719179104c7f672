package validators

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dharmasatrya/tripform/internal/models"
)

// Check letters indexed by number mod 23.
const nationalIDLetters = "TRWAGMYFPDXBNJZSQVHLCKE"

var nationalIDRegex = regexp.MustCompile(`^[0-9XYZ][0-9]{7}[A-Z]$`)

const (
	MsgNationalIDFormat   = "Invalid format. Expected 8 digits and a letter (DNI) or X/Y/Z, 7 digits and a letter (NIE)"
	MsgNationalIDChecksum = "The DNI/NIE check letter is not correct"
)

// NationalIDLetter returns the check letter for an 8-digit DNI number.
func NationalIDLetter(number int) byte {
	return nationalIDLetters[number%23]
}

// NationalID validates a Spanish DNI or NIE. NIE prefixes X, Y and Z stand
// for 0, 1 and 2 when computing the check letter.
func NationalID(v models.FieldValue) *models.ErrorEntry {
	if v.IsEmpty() {
		return nil
	}
	id := strings.ToUpper(strings.TrimSpace(v.Text))

	if !nationalIDRegex.MatchString(id) {
		return &models.ErrorEntry{Kind: models.ErrorInvalidNationalID, Message: MsgNationalIDFormat}
	}

	digits := id[:8]
	switch digits[0] {
	case 'X':
		digits = "0" + digits[1:]
	case 'Y':
		digits = "1" + digits[1:]
	case 'Z':
		digits = "2" + digits[1:]
	}

	number, err := strconv.Atoi(digits)
	if err != nil || NationalIDLetter(number) != id[8] {
		return &models.ErrorEntry{Kind: models.ErrorInvalidNationalID, Message: MsgNationalIDChecksum}
	}
	return nil
}
