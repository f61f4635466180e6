package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// MeshZone is a named group of boundary faces in a mesh file.
type MeshZone struct {
	Label string
	Faces int
}

// ReadZones lists the boundary zones of a Gambit neutral (.neu) or SU2 (.su2) mesh file.
func ReadZones(filename string) (zones []MeshZone, err error) {
	var file *os.File
	if file, err = os.Open(filename); err != nil {
		return nil, errors.Wrapf(err, "unable to open file %s", filename)
	}
	defer file.Close()
	reader := bufio.NewReader(file)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".neu":
		zones, err = readGambitZones(reader)
	case ".su2":
		zones, err = readSU2Zones(reader)
	default:
		return nil, errors.Errorf("unknown mesh format %q, expected .neu or .su2", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "mesh file %s", filename)
	}
	return
}

func readGambitZones(reader *bufio.Reader) (zones []MeshZone, err error) {
	// Skip first six lines
	if err = skipLines(6, reader); err != nil {
		return
	}
	var Nbcs int
	if _, _, _, Nbcs, _, err = ReadHeader(reader); err != nil {
		return
	}
	for len(zones) < Nbcs {
		var line string
		if line, err = getLine(reader); err != nil {
			if err == io.EOF {
				err = fmt.Errorf("found %d of %d boundary condition sections", len(zones), Nbcs)
			}
			return nil, err
		}
		if !strings.Contains(line, "BOUNDARY CONDITIONS") {
			continue
		}
		var z MeshZone
		if z, err = ReadBCS(reader); err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return
}

// ReadBCS reads one boundary condition section, the header line being consumed.
func ReadBCS(reader *bufio.Reader) (z MeshZone, err error) {
	var (
		line, bctyp string
		bcid        int
	)
	if line, err = getLine(reader); err != nil {
		return
	}
	if _, err = fmt.Sscanf(line, "%32s", &bctyp); err != nil {
		return z, errors.Wrapf(err, "boundary condition header [%s]", line)
	}
	bctyp = strings.Trim(bctyp, " ")
	// If BC text is "Cyl", the second field is a float parameter
	switch strings.ToLower(bctyp) {
	case "cyl":
		var paramf float64
		_, err = fmt.Sscanf(line, "%32s%8f%8d", &bctyp, &paramf, &z.Faces)
	default:
		_, err = fmt.Sscanf(line, "%32s%8d%8d", &bctyp, &bcid, &z.Faces)
	}
	if err != nil {
		return z, errors.Wrapf(err, "boundary condition header [%s]", line)
	}
	z.Label = bctyp
	if err = skipLines(z.Faces, reader); err != nil {
		return z, errors.Wrapf(err, "boundary condition %s", z.Label)
	}
	return
}

func ReadHeader(reader *bufio.Reader) (Nv, K, Nmats, Nbcs, Nsd int, err error) {
	/*
		Nv      // num nodes in mesh
		K       // num elements
		Nmats   // num material groups
		Nbcs    // num boundary groups
		Nsd;    // num space dimensions
	*/
	var (
		line   string
		n, dum int
	)
	if line, err = getLine(reader); err != nil {
		return
	}
	nargs := 6
	if n, err = fmt.Sscanf(line, "%d %d %d %d %d %d", &Nv, &K, &Nmats, &Nbcs, &Nsd, &dum); err != nil || n < nargs {
		if err == nil && n < nargs {
			err = fmt.Errorf("read fewer than %d dimensions, read %d, line: %s", nargs, n, line)
		}
		return
	}
	return
}

func getLine(reader *bufio.Reader) (line string, err error) {
	line, err = reader.ReadString('\n')
	if err == io.EOF && len(line) != 0 {
		err = nil
	}
	if err != nil {
		return
	}
	line = strings.TrimRight(line, "\r\n") // Strip away the newline
	return
}

func skipLines(n int, reader *bufio.Reader) (err error) {
	for i := 0; i < n; i++ {
		if _, err = getLine(reader); err != nil {
			if err == io.EOF {
				err = fmt.Errorf("early end of file")
			}
			return
		}
	}
	return
}
