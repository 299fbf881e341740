package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glove_go/internal/models"
	"glove_go/pkg/utils"
)

// testSnapshot monta um snapshot de exportação com valores reconhecíveis
func testSnapshot() models.SnapshotExport {
	snapshot := models.SnapshotExport{
		Timestamp:   time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC),
		DeviceLeft:  "Reality Glove (L)",
		DeviceRight: "Reality Glove (R)",
	}
	for j := 0; j < models.NumJoints; j++ {
		snapshot.Left[j] = models.JointSample{
			Hand:        models.HandLeft,
			Joint:       j,
			Position:    utils.Vector3{X: float64(j) * 0.01},
			Orientation: utils.IdentityQuaternion(),
		}
		snapshot.Right[j] = models.UnsetSample(models.HandRight, j)
	}
	return snapshot
}

func TestExportWritesCSV(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir, false)

	path, err := writer.Export(testSnapshot())
	require.NoError(t, err)

	// Nome do ficheiro derivado do timestamp do snapshot
	assert.Equal(t, "both_hands_20250314_150926.csv", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	// Seções de ambas as mãos com os nomes dos dispositivos
	assert.Contains(t, content, "=== LEFT GLOVE (Reality Glove (L)) ===")
	assert.Contains(t, content, "=== RIGHT GLOVE (Reality Glove (R)) ===")

	// Nomes das articulações na ordem OpenXR
	assert.Contains(t, content, "Palm")
	assert.Contains(t, content, "Thumb metacarpal")
	assert.Contains(t, content, "Little tip")
}

func TestExportRowLayout(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir, false)

	path, err := writer.Export(testSnapshot())
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	// 2 seções × (título + cabeçalho + 26 linhas)
	require.Len(t, records, 2*(2+models.NumJoints))

	// Cabeçalho sem colunas de orientação
	assert.Equal(t, []string{"Joint", "X", "Y", "Z"}, records[1])

	// Primeira articulação da mão esquerda
	assert.Equal(t, "Palm", records[2][0])
	assert.Equal(t, "0.000000", records[2][1])

	// Articulação 5 tem X = 0.05
	assert.Equal(t, models.JointNames[5], records[7][0])
	assert.Equal(t, "0.050000", records[7][1])
}

func TestExportWithOrientation(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir, true)

	path, err := writer.Export(testSnapshot())
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Joint", "X", "Y", "Z", "qW", "qX", "qY", "qZ"}, records[1])

	// Quaternião identidade nas amostras não definidas
	assert.Equal(t, "1.000000", records[2][4])
	assert.Equal(t, "0.000000", records[2][5])
}

func TestExportSectionWithoutDevice(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir, false)

	snapshot := testSnapshot()
	snapshot.DeviceLeft = ""
	snapshot.DeviceRight = ""

	path, err := writer.Export(snapshot)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "=== LEFT GLOVE ===")
	assert.False(t, strings.Contains(content, "()"))
}

func TestExportFailsOnUnwritableDir(t *testing.T) {
	// Um ficheiro no lugar do diretório de destino força o erro de escrita
	dir := t.TempDir()
	blocked := filepath.Join(dir, "exports")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0644))

	writer := NewWriter(blocked, false)

	_, err := writer.Export(testSnapshot())
	require.Error(t, err)

	var exportErr *ExportError
	assert.ErrorAs(t, err, &exportErr)
}
