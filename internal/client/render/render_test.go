package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvoice() models.Invoice {
	inv := models.NewInvoice(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), func(int) int { return 41 })
	inv.CustomerName = "Jamie Baker"
	inv.CustomerPhone = "+1 555 0100"
	inv.CustomerAddress = "9 Flour St\nLoaf Town"
	inv.Items = append(inv.Items, models.LineItem{ID: "2", Description: "Crème brûlée • tart", Quantity: 2, Price: 4.5, Flavor: "Vanilla"})
	inv.TaxRate = 10
	inv.Discount = 5
	inv.Notes = "Pick up at 10am."
	return *inv
}

func pngDataURL(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestPDF_Renders(t *testing.T) {
	inv := sampleInvoice()

	data, err := PDF(inv)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	inv.Logo = pngDataURL(t)
	withLogo, err := PDF(inv)
	require.NoError(t, err)
	assert.Greater(t, len(withLogo), len(data))
}

func TestPDF_BadLogoFallsBackToInitial(t *testing.T) {
	inv := sampleInvoice()
	inv.Logo = "data:image/png;base64,not-base64!!"

	data, err := PDF(inv)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Invoice_INV-2026-041.pdf", FileName(sampleInvoice()))
	assert.Equal(t, "Invoice_A-B.pdf", FileName(models.Invoice{Number: "A/B"}))
	assert.Equal(t, "Invoice_draft.pdf", FileName(models.Invoice{}))
}

func TestParseHexColor(t *testing.T) {
	assert.Equal(t, RGB{0x11, 0x22, 0x33}, ParseHexColor("#112233"))
	assert.Equal(t, RGB{0xaa, 0xbb, 0xcc}, ParseHexColor("#abc"))
	assert.Equal(t, DefaultTheme, ParseHexColor("pink"))
	assert.Equal(t, DefaultTheme, ParseHexColor("#zzzzzz"))
	assert.Equal(t, DefaultTheme, ParseHexColor(""))
}

func TestLoadLogoAndDataURL(t *testing.T) {
	url := pngDataURL(t)
	data, typ, err := loadLogo(url)
	require.NoError(t, err)
	assert.Equal(t, "PNG", typ)

	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, typ, err = loadLogo(path)
	require.NoError(t, err)
	assert.Equal(t, "PNG", typ)

	got, err := DataURL(path)
	require.NoError(t, err)
	assert.Equal(t, url, got)

	gif := filepath.Join(t.TempDir(), "logo.gif")
	require.NoError(t, os.WriteFile(gif, []byte("GIF89a"), 0o600))
	_, err = DataURL(gif)
	require.ErrorIs(t, err, errUnsupportedImage)

	_, _, err = loadLogo("data:image/png,raw")
	require.Error(t, err)
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleInvoice()))
	out := buf.String()

	for _, want := range []string{
		"Cake Dudes",
		"INVOICE #INV-2026-041   [DRAFT]",
		"Bill to: Jamie Baker",
		"Address: 9 Flour St, Loaf Town",
		"Custom Birthday Cake (Vanilla Bean • 1kg)",
		"59.00",
		"Tax (10%)",
		"-5.00",
		"TOTAL",
		"59.90",
		"Pick up at 10am.",
	} {
		assert.Contains(t, out, want)
	}
	assert.True(t, strings.Index(out, "Subtotal") < strings.Index(out, "TOTAL"))
}
