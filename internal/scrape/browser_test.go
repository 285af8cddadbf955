package scrape

import (
	"context"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// skipIfNoBrowser skips the test if Chrome/Chromium is not available
func skipIfNoBrowser(t *testing.T) {
	t.Helper()

	path, exists := launcher.LookPath()
	if !exists {
		t.Skip("Skipping browser test: Chrome/Chromium not available")
	}
	t.Logf("Found browser at: %s", path)
}

func TestBrowserFetcher(t *testing.T) {
	skipIfNoBrowser(t)

	// The image is only added by script, so a plain GET would miss it
	server := newWiki(t, map[string]string{
		"/wiki/Knight": `<html><body><div id="box"></div><script>
			var img = document.createElement("img");
			img.alt = "Knight Card";
			img.src = "https://static.test/KnightCard.png";
			document.getElementById("box").appendChild(img);
		</script></body></html>`,
	})

	ctx := context.Background()
	fetcher, err := NewBrowserFetcher(ctx, 20*time.Second)
	require.NoError(t, err)
	defer fetcher.Close()

	doc, err := fetcher.Fetch(ctx, server.URL+"/wiki/Knight")
	require.NoError(t, err)

	c, ok := ExtractCard(doc, "Knight", server.URL, nil)
	require.True(t, ok)
	assert.Equal(t, "https://static.test/KnightCard.png", c.ImageURL)
}
