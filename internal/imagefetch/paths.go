package imagefetch

import (
	"encoding/csv"
	"fmt"
	"os"
)

// WritePaths writes the Name,Path index of fetched images. Skipped items are
// still listed, with an empty path, so the table lines up with the input rows.
func WritePaths(path string, results []Result) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"Name", "Path"}); err != nil {
		return err
	}
	for _, r := range results {
		saved := r.Path
		if r.Err != nil {
			saved = ""
		}
		if err := w.Write([]string{r.Name, saved}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}

// ReadPaths reads a Name,Path index back into a name -> path map. Rows with
// an empty path are dropped.
func ReadPaths(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	paths := make(map[string]string, len(records))
	for i, rec := range records {
		if i == 0 || len(rec) < 2 || rec[1] == "" {
			continue
		}
		paths[rec[0]] = rec[1]
	}
	return paths, nil
}
