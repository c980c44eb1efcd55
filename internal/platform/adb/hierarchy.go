package adb

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/xml"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/wsyqhh/Accessibility-Service/internal/model"
)

// Hierarchy reads UI hierarchies via `uiautomator dump` and turns the
// polling primitive into a change-driven feed for Watch.
type Hierarchy struct {
	shell    *Shell
	interval time.Duration
	log      *slog.Logger
}

// NewHierarchy returns a Hierarchy polling at the given interval during
// Watch. A zero interval defaults to 800ms.
func NewHierarchy(shell *Shell, interval time.Duration, log *slog.Logger) *Hierarchy {
	if interval <= 0 {
		interval = 800 * time.Millisecond
	}
	if log == nil {
		log = slog.Default()
	}
	return &Hierarchy{shell: shell, interval: interval, log: log}
}

// Dump captures the current hierarchy once and returns the root node and the
// active package identifier.
func (h *Hierarchy) Dump(ctx context.Context) (*model.Node, string, error) {
	raw, err := h.dumpXML(ctx)
	if err != nil {
		return nil, "", err
	}
	return parseHierarchy(raw)
}

// Watch polls the device and calls publish whenever the dumped hierarchy
// differs from the previous one. Dump failures are logged and skipped; the
// feed keeps running until ctx is cancelled.
func (h *Hierarchy) Watch(ctx context.Context, publish func(root *model.Node, pkg string)) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var prevDigest [sha256.Size]byte
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		raw, err := h.dumpXML(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			h.log.Warn("hierarchy dump failed", "error", err)
			continue
		}
		digest := sha256.Sum256(raw)
		if digest == prevDigest {
			continue
		}
		root, pkg, err := parseHierarchy(raw)
		if err != nil {
			h.log.Warn("hierarchy parse failed", "error", err)
			continue
		}
		prevDigest = digest
		publish(root, pkg)
	}
}

// dumpXML fetches the raw uiautomator XML. Dumping to /dev/tty makes the
// device print the document on stdout instead of writing a file.
func (h *Hierarchy) dumpXML(ctx context.Context) ([]byte, error) {
	out, err := h.shell.exec(ctx, "exec-out", "uiautomator", "dump", "/dev/tty")
	if err != nil {
		return nil, err
	}
	// The dump is followed by "UI hierchary dumped to: /dev/tty" (sic).
	if idx := bytes.LastIndexByte(out, '>'); idx >= 0 {
		out = out[:idx+1]
	}
	if len(bytes.TrimSpace(out)) == 0 {
		return nil, fmt.Errorf("empty uiautomator dump")
	}
	return out, nil
}

// xmlNode mirrors the uiautomator dump schema. Pointer attributes stay nil
// when the attribute is missing, preserving absent-vs-empty labels.
type xmlNode struct {
	Text        *string   `xml:"text,attr"`
	ContentDesc *string   `xml:"content-desc,attr"`
	ResourceID  *string   `xml:"resource-id,attr"`
	Package     string    `xml:"package,attr"`
	Clickable   bool      `xml:"clickable,attr"`
	Enabled     bool      `xml:"enabled,attr"`
	Bounds      string    `xml:"bounds,attr"`
	Children    []xmlNode `xml:"node"`
}

type xmlHierarchy struct {
	XMLName xml.Name  `xml:"hierarchy"`
	Nodes   []xmlNode `xml:"node"`
}

// parseHierarchy decodes a uiautomator dump into a model tree. The document
// root is the hierarchy's single top-level node; its package attribute is
// the active package identifier.
func parseHierarchy(raw []byte) (*model.Node, string, error) {
	var doc xmlHierarchy
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, "", fmt.Errorf("parse hierarchy: %w", err)
	}
	if len(doc.Nodes) == 0 {
		return nil, "", fmt.Errorf("hierarchy has no root node")
	}
	root := convertNode(doc.Nodes[0], nil)
	return root, doc.Nodes[0].Package, nil
}

func convertNode(x xmlNode, parent *model.Node) *model.Node {
	n := &model.Node{
		Text:      x.Text,
		Desc:      x.ContentDesc,
		ViewID:    x.ResourceID,
		Clickable: x.Clickable,
		Enabled:   x.Enabled,
		Parent:    parent,
	}
	if b, err := parseBounds(x.Bounds); err == nil {
		n.Bounds = b
	}
	for _, child := range x.Children {
		n.Children = append(n.Children, convertNode(child, n))
	}
	return n
}

// parseBounds parses the uiautomator "[l,t][r,b]" bounds syntax.
func parseBounds(s string) ([4]int, error) {
	var b [4]int
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	parts := strings.Split(s, "][")
	if len(parts) != 2 {
		return b, fmt.Errorf("invalid bounds %q", s)
	}
	for i, part := range parts {
		coords := strings.Split(part, ",")
		if len(coords) != 2 {
			return b, fmt.Errorf("invalid bounds %q", s)
		}
		for j, c := range coords {
			v, err := strconv.Atoi(strings.TrimSpace(c))
			if err != nil {
				return b, fmt.Errorf("invalid bounds %q: %w", s, err)
			}
			b[i*2+j] = v
		}
	}
	return b, nil
}
