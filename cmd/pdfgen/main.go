// seehuhn.de/go/pdfgen - a library for generating PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Pdfgen converts a plain text file into a PDF document.
//
// Lines starting with "#" or "##" become headings, which are listed in the
// document outline.  All other lines are collected into paragraphs, which
// are separated by empty lines.
//
// Usage:
//
//	pdfgen [options] input.txt
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
	"golang.org/x/text/language"

	"seehuhn.de/go/geom/rect"

	pdf "seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/font"
	"seehuhn.de/go/pdfgen/font/embed"
	"seehuhn.de/go/pdfgen/font/loader"
	"seehuhn.de/go/pdfgen/internal/logging"
	"seehuhn.de/go/pdfgen/metadata"
)

var pageSizes = map[string]rect.Rect{
	"a4":     {URx: 595.276, URy: 841.89},
	"a5":     {URx: 419.528, URy: 595.276},
	"letter": {URx: 612, URy: 792},
}

var ciphers = map[string]pdf.Cipher{
	"rc4-40":  pdf.CipherRC4_40,
	"rc4-128": pdf.CipherRC4_128,
	"aes-128": pdf.CipherAES128,
	"aes-256": pdf.CipherAES256,
}

func main() {
	out := flag.String("o", "out.pdf", "output file name")
	force := flag.Bool("f", false, "overwrite output file if it exists")
	fontMap := flag.String("fontmap", "", "read font configuration from `file`")
	families := flag.String("family", "sans-serif", "comma-separated list of font families")
	size := flag.Float64("size", 11, "font size in points")
	paper := flag.String("paper", "a4", "paper size (a4, a5 or letter)")
	toc := flag.Bool("toc", false, "start with a table of contents")
	watermark := flag.String("watermark", "", "text shown faintly behind every page")
	title := flag.String("title", "", "document title")
	author := flag.String("author", "", "document author")
	lang := flag.String("lang", "en", "document language")
	version := flag.String("pdf", "1.7", "PDF version")
	strict := flag.Bool("strict", false, "treat recoverable problems as errors")
	noCompress := flag.Bool("no-compress", false, "do not compress streams")
	encrypt := flag.String("encrypt", "", "encrypt the document using `cipher` (rc4-40, rc4-128, aes-128, aes-256)")
	verbose := flag.Bool("v", false, "show debugging output")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.txt\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if !*force {
		if _, err := os.Stat(*out); !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "error: output file %q already exists\n", *out)
			os.Exit(1)
		}
	}

	cfg := pdf.DefaultConfig()
	v, err := pdf.ParseVersion(*version)
	if err != nil {
		fail(err)
	}
	cfg.Version = v
	if *strict {
		cfg.Policy = pdf.Strict
	}
	cfg.Compress = !*noCompress
	cfg.CreationDate = time.Now()

	if *encrypt != "" {
		cipher, ok := ciphers[*encrypt]
		if !ok {
			fail(fmt.Errorf("unknown cipher %q", *encrypt))
		}
		passwd, err := readPassword()
		if err != nil {
			fail(err)
		}
		cfg.Encryption = &pdf.EncryptionParams{
			UserPassword: passwd,
			Permissions:  pdf.PermAll,
			Cipher:       cipher,
			Required:     *strict,
		}
	}

	mediaBox, ok := pageSizes[strings.ToLower(*paper)]
	if !ok {
		fail(fmt.Errorf("unknown paper size %q", *paper))
	}
	tag, err := language.Parse(*lang)
	if err != nil {
		fail(err)
	}

	opt := &layout{
		Families:  strings.Split(*families, ","),
		Size:      *size,
		PageSize:  mediaBox,
		Margin:    72,
		TOC:       *toc,
		Watermark: *watermark,
	}
	err = run(context.Background(), flag.Arg(0), *out, *fontMap, cfg, opt, *title, *author, tag)
	if err != nil {
		fail(err)
	}
}

func run(ctx context.Context, in, out, fontMap string, cfg *pdf.Config, opt *layout, title, author string, lang language.Tag) error {
	r, err := os.Open(in)
	if err != nil {
		return err
	}
	blocks, err := parse(r)
	r.Close()
	if err != nil {
		return err
	}

	fi := font.NewInfo(nil)
	var entries []loader.EmbedFontInfo
	if fontMap != "" {
		entries, err = readFontMap(fontMap)
		if err != nil {
			return err
		}
	}
	err = loader.Load(ctx, fi, entries, &loader.Options{Policy: cfg.Policy})
	if err != nil {
		return err
	}

	d, err := pdf.Create(out, cfg)
	if err != nil {
		return err
	}
	d.Resources().Fonts = embed.NewRegistry(fi)

	info := d.Info()
	info.Title = title
	info.Author = author
	info.Creator = "pdfgen"
	info.CreationDate = cfg.CreationDate
	if lang != language.Und {
		d.Catalog().Lang = lang.String()
	}

	err = render(d, fi, blocks, opt)
	if err != nil {
		return err
	}

	if cfg.Version >= pdf.V1_4 {
		m, err := metadata.FromInfo(info, lang)
		if err != nil {
			return err
		}
		_, err = m.Embed(d)
		if err != nil {
			return err
		}
	}

	return d.Close()
}

func readFontMap(name string) ([]loader.EmbedFontInfo, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return loader.ReadFontMap(f)
}

// readPassword asks for the user password on the terminal.
func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		data, err := io.ReadAll(io.LimitReader(os.Stdin, 128))
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, "password: ")
	passwd, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	fmt.Fprint(os.Stderr, "repeat password: ")
	again, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	if string(passwd) != string(again) {
		return "", errors.New("passwords do not match")
	}
	return string(passwd), nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
