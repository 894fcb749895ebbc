// Package export writes generated meshes to interchange formats.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Faultbox/strangefruit/internal/engine/mesh"
)

// OBJOptions controls the Wavefront OBJ header.
type OBJOptions struct {
	Name     string   // object name ("o" line), omitted when empty
	Comments []string // written as "#" lines before any data
}

// WriteOBJ writes m as a Wavefront OBJ with positions, texture coordinates
// and normals. Faces reference all three with the same 1-based index.
func WriteOBJ(w io.Writer, m *mesh.Mesh, opts OBJOptions) error {
	if m == nil {
		return fmt.Errorf("write obj: nil mesh")
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("write obj: index count %d is not a multiple of 3", len(m.Indices))
	}

	bw := bufio.NewWriter(w)

	for _, c := range opts.Comments {
		fmt.Fprintf(bw, "# %s\n", c)
	}
	if opts.Name != "" {
		fmt.Fprintf(bw, "o %s\n", opts.Name)
	}

	for _, v := range m.Vertices {
		p := v.Position
		fmt.Fprintf(bw, "v %s %s %s\n", ff(p.X), ff(p.Y), ff(p.Z))
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "vt %s %s\n", ff(v.TexCoord[0]), ff(v.TexCoord[1]))
	}
	for _, v := range m.Vertices {
		n := v.Normal
		fmt.Fprintf(bw, "vn %s %s %s\n", ff(n.X), ff(n.Y), ff(n.Z))
	}

	for i := 0; i < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return nil
}

// SaveOBJ writes m to path.
func SaveOBJ(path string, m *mesh.Mesh, opts OBJOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteOBJ(f, m, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ff(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 6, 32)
}
