// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/util"
)

// =============================================================================
// FILE SHARER
// =============================================================================

// FileSharer writes single messages as Markdown snippets under the export
// directory. It is the default share destination for the message share
// action.
type FileSharer struct {
	outputDir string
}

// NewFileSharer creates a sharer writing into dir, or the default export
// directory when dir is empty.
func NewFileSharer(dir string) *FileSharer {
	if dir == "" {
		dir = defaultOutputDir()
	}
	return &FileSharer{outputDir: dir}
}

// Share writes the message as a standalone Markdown snippet.
func (s *FileSharer) Share(msg model.Message) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("### [%s] <sub>%s</sub>\n\n", msg.Role.DisplayName(), formatShortTimestamp(msg.CreatedAt)))
	sb.WriteString(strings.TrimSpace(msg.Text))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("*Shared from parley on %s*\n", time.Now().Format("January 2, 2006 at 3:04 PM")))

	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	filename := fmt.Sprintf("message_%s_%s.md", sanitizeFilename(msg.Preview(40)), time.Now().Format("20060102_150405"))
	path := filepath.Join(s.outputDir, filename)
	if err := util.AtomicWriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("write share file: %w", err)
	}
	return nil
}
