package sheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadRows_CSV(t *testing.T) {
	tests := []struct {
		name string
		data string
		want [][]string
	}{
		{
			name: "comma",
			data: "Nombre:,Ana Perez\n2024-03-04, 09:00 ,13:00\n",
			want: [][]string{{"Nombre:", "Ana Perez"}, {"2024-03-04", "09:00", "13:00"}},
		},
		{
			name: "semicolon with bom",
			data: "\xef\xbb\xbf04/03/2024;09:00;13:00;14:00;18:00\n",
			want: [][]string{{"04/03/2024", "09:00", "13:00", "14:00", "18:00"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ReadRows("north.csv", []byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, rows)
		})
	}
}

func TestReadRows_Workbook(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Empleado:", "Luis Gómez"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"2024-03-04", "08:00", "12:00"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := ReadRows("CENTRO-marzo.xlsx", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Empleado:", "Luis Gómez"}, rows[0])
	assert.Equal(t, []string{"2024-03-04", "08:00", "12:00"}, rows[1])
}

func TestReadRows_Unsupported(t *testing.T) {
	_, err := ReadRows("punches.pdf", []byte("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRead_MalformedRecordIsLocal(t *testing.T) {
	data := "04/03/2024;09:00\nAna \"Pe\"rez;10:00\n05/03/2024;11:00\n"

	sheets, err := Read("north.csv", []byte(data))
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, "north.csv", sheets[0].Name)
	assert.Equal(t, []int{1}, sheets[0].Malformed)
	assert.Equal(t, [][]string{{"04/03/2024", "09:00"}, nil, {"05/03/2024", "11:00"}}, sheets[0].Rows)

	_, err = ReadRows("north.csv", []byte(data))
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestRead_WorkbookKeepsSheetsApart(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Nombre:", "Ana Pérez"}))
	_, err := f.NewSheet("Sur")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Sur", "A1", &[]interface{}{"2024-03-04", "08:00"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	sheets, err := Read("marzo.xlsx", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, sheets, 2)
	assert.Equal(t, "Sheet1", sheets[0].Name)
	assert.Equal(t, [][]string{{"Nombre:", "Ana Pérez"}}, sheets[0].Rows)
	assert.Equal(t, "Sur", sheets[1].Name)
	assert.Equal(t, [][]string{{"2024-03-04", "08:00"}}, sheets[1].Rows)
}
