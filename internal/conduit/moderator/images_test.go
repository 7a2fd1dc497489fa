package moderator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractImageURLsMarkdown(t *testing.T) {
	t.Parallel()

	body := `# Title

Some text with an image:

![alt text](https://example.com/cat.png)

And another ![dog](http://example.com/dog.jpg "a dog").`

	urls := ExtractImageURLs(body)
	require.Equal(t, []string{
		"https://example.com/cat.png",
		"http://example.com/dog.jpg",
	}, urls)
}

func TestExtractImageURLsInlineHTML(t *testing.T) {
	t.Parallel()

	body := `Text with inline html <img src="https://example.com/a.png"> and a block:

<div>
  <img src="https://example.com/b.png" alt="b"/>
</div>`

	urls := ExtractImageURLs(body)
	require.Contains(t, urls, "https://example.com/a.png")
	require.Contains(t, urls, "https://example.com/b.png")
}

func TestExtractImageURLsFiltersNonHTTP(t *testing.T) {
	t.Parallel()

	body := `![rel](/relative/path.png)
![data](data:image/png;base64,AAAA)
![js](javascript:alert(1))
![ok](https://example.com/ok.png)`

	urls := ExtractImageURLs(body)
	require.Equal(t, []string{"https://example.com/ok.png"}, urls)
}

func TestExtractImageURLsDedupes(t *testing.T) {
	t.Parallel()

	body := `![a](https://example.com/same.png)
![b](https://example.com/same.png)`

	urls := ExtractImageURLs(body)
	require.Equal(t, []string{"https://example.com/same.png"}, urls)
}

func TestExtractImageURLsEmpty(t *testing.T) {
	t.Parallel()

	require.Empty(t, ExtractImageURLs("plain text, no images"))
	require.Empty(t, ExtractImageURLs(""))
}
