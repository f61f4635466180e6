package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// From here: https://su2code.github.io/docs_v7/Mesh-File/
// Only the marker section matters for zones: element and point blocks are
// skipped using their counts.
func readSU2Zones(reader *bufio.Reader) (zones []MeshZone, err error) {
	var (
		line string
		num  int
		seen = make(map[string]bool)
	)
	for {
		if line, err = getLineNoComments(reader); err != nil {
			if err == io.EOF {
				return zones, nil
			}
			return nil, err
		}
		key, _ := splitToken(line)
		switch key {
		case "NDIME":
			continue
		case "NELEM", "NPOIN":
			if num, err = tokenNumber(line); err != nil {
				return nil, err
			}
			if err = skipLines(num, reader); err != nil {
				return nil, errors.Wrapf(err, "reading %s block", key)
			}
		case "NMARK":
			var nmark int
			if nmark, err = tokenNumber(line); err != nil {
				return nil, err
			}
			for n := 0; n < nmark; n++ {
				var z MeshZone
				if z.Label, err = readLabel(reader); err != nil {
					return nil, err
				}
				if seen[z.Label] {
					return nil, errors.Errorf("duplicate boundary marker found with label: [%s]", z.Label)
				}
				seen[z.Label] = true
				if z.Faces, err = readNumber(reader); err != nil {
					return nil, err
				}
				if err = skipLines(z.Faces, reader); err != nil {
					return nil, errors.Wrapf(err, "reading marker %s", z.Label)
				}
				zones = append(zones, z)
			}
		default:
			return nil, errors.Errorf("unexpected SU2 keyword in line [%s]", line)
		}
	}
}

func splitToken(line string) (key, token string) {
	ind := strings.Index(line, "=")
	if ind < 0 {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(line[:ind]), strings.TrimSpace(line[ind+1:])
}

func getToken(reader *bufio.Reader) (token string, err error) {
	var line string
	if line, err = getLineNoComments(reader); err != nil {
		return
	}
	if !strings.Contains(line, "=") {
		return "", fmt.Errorf("badly formed input line [%s], should have an =", line)
	}
	_, token = splitToken(line)
	return
}

func readLabel(reader *bufio.Reader) (label string, err error) {
	var token string
	if token, err = getToken(reader); err != nil {
		return
	}
	if _, err = fmt.Sscanf(token, "%s", &label); err != nil {
		return "", fmt.Errorf("unable to read label from token: [%s]", token)
	}
	return
}

func tokenNumber(line string) (num int, err error) {
	_, token := splitToken(line)
	if _, err = fmt.Sscanf(token, "%d", &num); err != nil {
		return 0, fmt.Errorf("unable to read number from token: [%s]", token)
	}
	return
}

func readNumber(reader *bufio.Reader) (num int, err error) {
	var line string
	if line, err = getLineNoComments(reader); err != nil {
		return
	}
	return tokenNumber(line)
}

func getLineNoComments(reader *bufio.Reader) (line string, err error) {
	for {
		if line, err = getLine(reader); err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "%") {
			return
		}
	}
}
