package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/AnyUserName/imgconv-cli/internal/classify"
	"github.com/AnyUserName/imgconv-cli/internal/converter"
	"github.com/AnyUserName/imgconv-cli/internal/hasher"
	"github.com/AnyUserName/imgconv-cli/internal/report"
)

// hashLen is the number of digest characters in content-addressed names.
const hashLen = 8

// planNames picks an output path, relative to the output dir, for every
// source. Sources that would land on the same name keep their original
// extension in the stem: photo.png and photo.jpg become photo-png.webp and
// photo-jpg.webp.
func planNames(sources []Source, format string) []string {
	names := make([]string, len(sources))
	count := map[string]int{}
	for i, s := range sources {
		names[i] = converter.OutputFilename(s.RelPath, format)
		count[names[i]]++
	}
	for i, s := range sources {
		if count[names[i]] > 1 {
			ext := converter.FileExtension(s.RelPath)
			stem := strings.TrimSuffix(s.RelPath, filepath.Ext(s.RelPath))
			names[i] = converter.OutputFilename(stem+"-"+ext, format)
		}
	}
	return names
}

// hashedName inserts the content hash before the extension.
func hashedName(name string, data []byte) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "." + hasher.Short(data, hashLen) + ext
}

// process converts a single source and writes its output.
func (p *Pipeline) process(ctx context.Context, src Source, name string) report.Entry {
	log := p.cfg.Logger.With().Str("input", src.RelPath).Logger()
	entry := report.Entry{Input: src.AbsPath, OriginalSize: src.Size}

	fail := func(err error) report.Entry {
		d := classify.Classify(err)
		classify.Log(log, err, d)
		entry.Failure = &d
		return entry
	}

	data, err := os.ReadFile(src.AbsPath)
	if err != nil {
		return fail(err)
	}
	entry.OriginalSize = int64(len(data))

	res := p.conv.Convert(ctx, converter.Request{
		Data:     data,
		MIMEType: mimetype.Detect(data).String(),
		Format:   p.cfg.Format,
		Options:  p.cfg.Options,
		Engine:   p.cfg.Engine,
	})
	if !res.OK() {
		d := res.Failure.Descriptor
		entry.Engine = string(res.Failure.Engine)
		entry.Failure = &d
		return entry
	}

	out := res.Success
	if p.cfg.HashNames {
		name = hashedName(name, out.Data)
	}
	dest := filepath.Join(p.cfg.OutputDir, name)
	if abs, err := filepath.Abs(dest); err == nil && abs == src.AbsPath {
		return fail(fmt.Errorf("invalid parameter: output %s would overwrite its input", name))
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fail(err)
	}
	if err := os.WriteFile(dest, out.Data, 0o644); err != nil {
		return fail(err)
	}

	entry.Output = filepath.ToSlash(name)
	entry.Engine = string(out.Engine)
	entry.Token = string(out.Token)
	entry.InputFormat = out.InputFormat
	entry.InputGuessed = out.InputGuessed
	entry.NewSize = int64(out.NewSize)
	entry.Width = out.Width
	entry.Height = out.Height
	entry.Hash = hasher.Sum(out.Data)

	log.Debug().
		Str("output", entry.Output).
		Str("engine", entry.Engine).
		Int64("bytes", entry.NewSize).
		Msg("converted")
	return entry
}
