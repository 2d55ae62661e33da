// Package seed loads the startup catalog and user fixtures. The stores
// treat this as one-time initial-state injection; nothing is written back.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"techstore/internal/catalog"
	"techstore/internal/directory"
)

type Data struct {
	Products []catalog.Product
	Users    []directory.User
}

// Load reads products.json and users.json from dir.
func Load(dir string) (Data, error) {
	var d Data
	var g errgroup.Group
	g.Go(func() error { return readJSON(filepath.Join(dir, "products.json"), &d.Products) })
	g.Go(func() error { return readJSON(filepath.Join(dir, "users.json"), &d.Users) })
	if err := g.Wait(); err != nil {
		return Data{}, err
	}
	return d, nil
}

func readJSON(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}
