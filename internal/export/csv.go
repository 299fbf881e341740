package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"glove_go/internal/models"
	"glove_go/pkg/logger"
	"glove_go/pkg/utils"
)

// Precisão das colunas numéricas do CSV
const csvPrecision = 6

// ExportError indica uma falha ao escrever o ficheiro de exportação
type ExportError struct {
	Path string
	Err  error
}

// Error implementa a interface error
func (e *ExportError) Error() string {
	return fmt.Sprintf("falha ao exportar %s: %v", e.Path, e.Err)
}

// Unwrap expõe o erro original
func (e *ExportError) Unwrap() error {
	return e.Err
}

// Writer escreve snapshots de pose em ficheiros CSV.
//
// Layout do ficheiro (mesmo formato das exportações do visualizador):
//
//	=== LEFT GLOVE ===  (nome do dispositivo, se anunciado)
//	Joint,X,Y,Z[,qW,qX,qY,qZ]
//	Palm,0.012345,...
//	...
//	=== RIGHT GLOVE ===
//	...
type Writer struct {
	dir                string
	includeOrientation bool
}

// NewWriter cria um Writer para o diretório indicado
func NewWriter(dir string, includeOrientation bool) *Writer {
	return &Writer{dir: dir, includeOrientation: includeOrientation}
}

// Export escreve o snapshot num ficheiro both_hands_<yyyymmdd_hhmmss>.csv no
// diretório do Writer e retorna o caminho do ficheiro criado.
func (w *Writer) Export(snapshot models.SnapshotExport) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", &ExportError{Path: w.dir, Err: err}
	}

	filename := fmt.Sprintf("both_hands_%s.csv", utils.FileTimestamp(snapshot.Timestamp))
	path := filepath.Join(w.dir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", &ExportError{Path: path, Err: err}
	}
	defer file.Close()

	cw := csv.NewWriter(file)

	if err := w.writeHand(cw, "LEFT GLOVE", snapshot.DeviceLeft, snapshot.Left); err != nil {
		return "", &ExportError{Path: path, Err: err}
	}
	if err := w.writeHand(cw, "RIGHT GLOVE", snapshot.DeviceRight, snapshot.Right); err != nil {
		return "", &ExportError{Path: path, Err: err}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", &ExportError{Path: path, Err: err}
	}

	logger.Infof("Snapshot exportado para %s", path)
	return path, nil
}

// writeHand escreve a seção de uma mão: título, cabeçalho e 26 linhas
func (w *Writer) writeHand(cw *csv.Writer, title, device string, snap models.HandSnapshot) error {
	section := fmt.Sprintf("=== %s ===", title)
	if device != "" {
		section = fmt.Sprintf("=== %s (%s) ===", title, device)
	}
	if err := cw.Write([]string{section}); err != nil {
		return err
	}

	header := []string{"Joint", "X", "Y", "Z"}
	if w.includeOrientation {
		header = append(header, "qW", "qX", "qY", "qZ")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for j := 0; j < models.NumJoints; j++ {
		sample := snap[j]
		row := []string{
			models.JointNames[j],
			utils.FormatFloatFixed(sample.Position.X, csvPrecision),
			utils.FormatFloatFixed(sample.Position.Y, csvPrecision),
			utils.FormatFloatFixed(sample.Position.Z, csvPrecision),
		}
		if w.includeOrientation {
			row = append(row,
				utils.FormatFloatFixed(sample.Orientation.W, csvPrecision),
				utils.FormatFloatFixed(sample.Orientation.X, csvPrecision),
				utils.FormatFloatFixed(sample.Orientation.Y, csvPrecision),
				utils.FormatFloatFixed(sample.Orientation.Z, csvPrecision),
			)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return nil
}
