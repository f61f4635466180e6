package readfiles

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSU2(t *testing.T) {
	{ // Test reading the file structure
		reader := bufio.NewReader(bytes.NewReader(inputFile))
		dim, err := readNumber(reader)
		require.NoError(t, err)
		assert.Equal(t, 2, dim)
		nelem, err := readNumber(reader)
		require.NoError(t, err)
		assert.Equal(t, 22, nelem)
		require.NoError(t, skipLines(22, reader))
		npts, err := readNumber(reader)
		require.NoError(t, err)
		assert.Equal(t, 18, npts)
	}
	{ // Test read zones
		zones, err := readSU2Zones(bufio.NewReader(bytes.NewReader(inputFile)))
		require.NoError(t, err)
		assert.Equal(t, []MeshZone{
			{Label: "periodic-left", Faces: 2},
			{Label: "periodic-right", Faces: 2},
			{Label: "top", Faces: 4},
			{Label: "bottom", Faces: 4},
		}, zones)
	}
	{ // Truncated marker block
		_, err := readSU2Zones(bufio.NewReader(bytes.NewReader(inputFile[:len(inputFile)-120])))
		assert.Error(t, err)
	}
	{ // Duplicate marker
		dup := append(append([]byte{}, inputFile...), []byte("NMARK= 1\nMARKER_TAG= top\nMARKER_ELEMS= 0\n")...)
		_, err := readSU2Zones(bufio.NewReader(bytes.NewReader(dup)))
		assert.Error(t, err)
	}
}

func TestReadGambit(t *testing.T) {
	zones, err := readGambitZones(bufio.NewReader(bytes.NewReader(gambitFile)))
	require.NoError(t, err)
	assert.Equal(t, []MeshZone{
		{Label: "inflow", Faces: 2},
		{Label: "Cyl", Faces: 1},
		{Label: "wall", Faces: 3},
	}, zones)

	dir := t.TempDir()
	for name, data := range map[string][]byte{"mesh.neu": gambitFile, "mesh.su2": inputFile, "mesh.msh": inputFile} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
	}
	zones, err = ReadZones(filepath.Join(dir, "mesh.neu"))
	require.NoError(t, err)
	assert.Len(t, zones, 3)
	zones, err = ReadZones(filepath.Join(dir, "mesh.su2"))
	require.NoError(t, err)
	assert.Len(t, zones, 4)
	_, err = ReadZones(filepath.Join(dir, "mesh.msh"))
	assert.Error(t, err)
	_, err = ReadZones(filepath.Join(dir, "missing.neu"))
	assert.Error(t, err)
}

var gambitFile = []byte(`        CONTROL INFO 2.4.6
** GAMBIT NEUTRAL FILE
channel
PROGRAM:                Gambit     VERSION:  2.4.6
 Jan 2021
     NUMNP     NELEM     NGRPS    NBSETS     NDFCD     NDFVL
         4         2         1         3         2         2
ENDOFSECTION
   NODAL COORDINATES 2.4.6
         1  0.00000000000e+00  0.00000000000e+00
         2  1.00000000000e+00  0.00000000000e+00
         3  1.00000000000e+00  1.00000000000e+00
         4  0.00000000000e+00  1.00000000000e+00
ENDOFSECTION
      ELEMENTS/CELLS 2.4.6
       1  3  3        1       2       3
       2  3  3        1       3       4
ENDOFSECTION
 BOUNDARY CONDITIONS 2.4.6
                  inflow       1       2       0       6
       1       3       1
       2       3       3
ENDOFSECTION
 BOUNDARY CONDITIONS 2.4.6
                     Cyl     0.5       1       0       6
       1       3       2
ENDOFSECTION
 BOUNDARY CONDITIONS 2.4.6
                    wall       1       3       0       6
       1       3       1
       2       3       2
       2       3       3
ENDOFSECTION
`)

var (
	inputFile = []byte(` %This is an example input file in SU2 format, output from gmsh
% Comments can appear outside of data areas
NDIME= 2
% Comments can appear outside of data areas
NELEM= 22
5 5 6 13 0
5 9 10 12 1
5 12 5 13 2
5 9 12 13 3
5 13 6 14 4
5 12 10 15 5
5 8 9 13 6
5 4 5 12 7
5 1 7 14 8
5 6 1 14 9
5 3 11 15 10
5 10 3 15 11
5 8 13 16 12
5 4 12 17 13
5 13 14 16 14
5 12 15 17 15
5 7 2 16 16
5 11 0 17 17
5 2 8 16 18
5 0 4 17 19
5 14 7 16 20
5 15 11 17 21
% Comments can appear outside of data areas
NPOIN= 18
-10 0 0
10 0 1
10 10 2
-10 10 3
-5.000000000004944 0 4
-1.231725832440134e-11 0 5
4.99999999999384 0 6
10 4.999999999992398 7
5.000000000004944 10 8
1.231725832440134e-11 10 9
-4.99999999999384 10 10
-10 5 11
-2.500000000008632 4.330127018915808 12
2.50000000000863 5.669872981084192 13
6.712741669205853 3.668411415814691 14
-6.712741669205681 6.331588584184096 15
7.100939331384343 7.110089675963254 16
-7.100939331382065 2.889910324036197 17
NMARK= 4
% Comments can appear outside of data areas
MARKER_TAG= periodic-left
% Comments can appear outside of data areas
MARKER_ELEMS= 2
3 3 11
3 11 0
% Comments can appear outside of data areas
MARKER_TAG= periodic-right
MARKER_ELEMS= 2
3 1 7
3 7 2
% Comments can appear outside of data areas
MARKER_TAG= top
MARKER_ELEMS= 4
3 2 8
3 8 9
3 9 10
3 10 3
MARKER_TAG= bottom
% Comments can appear outside of data areas
MARKER_ELEMS= 4
3 0 4
3 4 5
3 5 6
3 6 1
% Comments can appear outside of data areas
`)
)
