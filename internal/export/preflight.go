package export

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// AssetPrefix is the URL path under which meme images are referenced
const AssetPrefix = "/memes/"

// PreflightOptions configure Preflight
type PreflightOptions struct {
	AssetsDir   string
	AllowRemote bool
	Background  string
	Selector    string
	// OnMissing is told about local images dropped because the asset file
	// does not exist
	OnMissing func(name string)
}

// Preflight makes a document self-contained for capture: local asset
// images become data URIs, remote images are rejected, and the
// background is flattened to an opaque color. A local image whose file is
// missing is removed from the document rather than failing the capture.
func Preflight(document []byte, opts PreflightOptions) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	var walkErr error
	var head *html.Node
	var dropped []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if walkErr != nil {
			return
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Head:
				head = n
			case atom.Img:
				var keep bool
				keep, walkErr = inlineImage(n, opts)
				if walkErr == nil && !keep {
					dropped = append(dropped, n)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if walkErr != nil {
		return nil, walkErr
	}
	for _, n := range dropped {
		n.Parent.RemoveChild(n)
	}

	if opts.Background != "" && head != nil {
		head.AppendChild(backgroundStyle(opts))
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	return buf.Bytes(), nil
}

// inlineImage rewrites the src of n. keep is false when n points at a
// local asset that does not exist.
func inlineImage(n *html.Node, opts PreflightOptions) (keep bool, err error) {
	for i, a := range n.Attr {
		if a.Key != "src" {
			continue
		}
		src := strings.TrimSpace(a.Val)
		switch {
		case strings.HasPrefix(src, "data:"):
		case strings.HasPrefix(src, AssetPrefix):
			name := strings.TrimPrefix(src, AssetPrefix)
			uri, err := assetDataURI(opts.AssetsDir, name)
			if errors.Is(err, fs.ErrNotExist) {
				if opts.OnMissing != nil {
					opts.OnMissing(name)
				}
				return false, nil
			}
			if err != nil {
				return false, err
			}
			n.Attr[i].Val = uri
		case isRemote(src):
			if !opts.AllowRemote {
				return false, fmt.Errorf("%w: %s", ErrCrossOrigin, src)
			}
		}
	}
	return true, nil
}

func isRemote(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//")
}

func assetDataURI(dir, name string) (string, error) {
	clean := path.Clean("/" + name)[1:]
	if clean == "" || clean != name || strings.Contains(clean, "/") {
		return "", fmt.Errorf("invalid asset name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, clean))
	if err != nil {
		return "", fmt.Errorf("read asset: %w", err)
	}

	mt := mime.TypeByExtension(filepath.Ext(clean))
	if mt == "" {
		mt = "application/octet-stream"
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func backgroundStyle(opts PreflightOptions) *html.Node {
	selector := opts.Selector
	if selector == "" {
		selector = "#artifact"
	}
	style := &html.Node{Type: html.ElementNode, Data: "style", DataAtom: atom.Style}
	style.AppendChild(&html.Node{
		Type: html.TextNode,
		Data: fmt.Sprintf("html, body, %s { background-color: %s !important; }", selector, opts.Background),
	})
	return style
}
