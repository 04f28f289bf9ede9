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

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"seehuhn.de/go/geom/rect"

	pdf "seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/action"
	"seehuhn.de/go/pdfgen/font"
	"seehuhn.de/go/pdfgen/graphics"
	"seehuhn.de/go/pdfgen/outline"
	"seehuhn.de/go/pdfgen/pagetree"
)

// block is a paragraph or a heading of the input text.
type block struct {
	level int // 0 for paragraphs
	text  string
}

// parse splits the input into blocks.  Lines starting with "#" or "##"
// are headings, paragraphs are separated by empty lines.
func parse(r io.Reader) ([]block, error) {
	var blocks []block
	var par []string
	flush := func() {
		if len(par) > 0 {
			blocks = append(blocks, block{text: strings.Join(par, " ")})
			par = nil
		}
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "#"):
			flush()
			level := len(line) - len(strings.TrimLeft(line, "#"))
			title := strings.TrimSpace(line[level:])
			if title == "" {
				continue
			}
			blocks = append(blocks, block{level: min(level, 2), text: title})
		default:
			par = append(par, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return blocks, nil
}

type layout struct {
	Families  []string
	Size      float64
	PageSize  rect.Rect
	Margin    float64
	TOC       bool
	Watermark string
}

// typesetter places blocks onto pages.
type typesetter struct {
	d    *pdf.Document
	opt  *layout
	tree *pagetree.Tree

	key, boldKey string
	body, bold   font.Typeface

	gsName, csName pdf.Name

	page *pagetree.Page
	y    float64
}

func render(d *pdf.Document, fi *font.Info, blocks []block, opt *layout) error {
	key, body, err := fi.Find(opt.Families, font.StyleNormal, font.WeightNormal)
	if err != nil {
		return err
	}
	boldKey, bold, err := fi.Find(opt.Families, font.StyleNormal, font.WeightBold)
	if err != nil {
		return err
	}

	ts := &typesetter{
		d:       d,
		opt:     opt,
		tree:    pagetree.New(d, 0, opt.PageSize),
		key:     key,
		boldKey: boldKey,
		body:    body,
		bold:    bold,
	}

	res := d.Resources()
	cs, err := graphics.NewICCBased(d, nil)
	if err != nil {
		return err
	}
	ts.csName = res.Add(pdf.ResColorSpace, cs)
	if opt.Watermark != "" {
		gs := graphics.NewExtGState(d, graphics.Opacity(0.15))
		ts.gsName = res.Add(pdf.ResExtGState, gs)
	}

	var headings []block
	targets := make(map[int]*action.Target)
	for i, b := range blocks {
		if b.level > 0 {
			headings = append(headings, b)
			targets[i] = &action.Target{}
		}
	}

	var out *outline.Outline
	if len(headings) > 0 {
		out = outline.New(d)
	}

	if opt.TOC && len(headings) > 0 {
		err = ts.contents(blocks, targets)
		if err != nil {
			return err
		}
		err = ts.finishPage()
		if err != nil {
			return err
		}
	}

	var section *outline.Item
	for i, b := range blocks {
		if b.level == 0 {
			err = ts.paragraph(b.text)
			if err != nil {
				return err
			}
			continue
		}

		lineHeight := 1.6 * ts.opt.Size
		if ts.page == nil || ts.y-3*lineHeight < opt.Margin {
			err = ts.newPage()
			if err != nil {
				return err
			}
		}
		ts.y -= lineHeight
		t := targets[i]
		ts.page.Resolve(t, opt.Margin, ts.y+lineHeight)
		err = ts.heading(b.text)
		if err != nil {
			return err
		}

		if b.level == 1 || section == nil {
			section = out.AddItem(b.text, t)
			section.Bold = true
			section.Open = true
		} else {
			section.AddChild(b.text, t)
		}
	}

	return ts.finishPage()
}

// contents writes a table of contents, with links to the headings.  The
// link targets are resolved later, when the headings are placed.
func (ts *typesetter) contents(blocks []block, targets map[int]*action.Target) error {
	err := ts.newPage()
	if err != nil {
		return err
	}

	size := ts.opt.Size
	ts.y -= 2 * size
	err = ts.heading("Contents")
	if err != nil {
		return err
	}
	ts.y -= size

	for i, b := range blocks {
		if b.level == 0 {
			continue
		}
		if ts.y-1.4*size < ts.opt.Margin {
			err = ts.newPage()
			if err != nil {
				return err
			}
		}
		ts.y -= 1.4 * size
		x := ts.opt.Margin + float64(b.level-1)*2*size
		err = ts.page.ShowText(ts.key, ts.body, size, x, ts.y, b.text)
		if err != nil {
			return err
		}

		w := font.TextWidth(ts.body, b.text) * size / 1000
		area := rect.Rect{LLx: x, LLy: ts.y - 0.2*size, URx: x + w, URy: ts.y + 0.8*size}
		link := action.NewLink(ts.d, area, action.NewGoTo(ts.d, targets[i]))
		ts.page.AddLink(link)
	}
	return nil
}

func (ts *typesetter) heading(text string) error {
	size := 1.2 * ts.opt.Size
	_, err := fmt.Fprintf(ts.page.Content(), "%s cs 0.1 0.2 0.5 sc\n", pdf.Format(ts.csName))
	if err != nil {
		return err
	}
	err = ts.page.ShowText(ts.boldKey, ts.bold, size, ts.opt.Margin, ts.y, text)
	if err != nil {
		return err
	}
	_, err = ts.page.Content().WriteString("0 g\n")
	return err
}

func (ts *typesetter) paragraph(text string) error {
	size := ts.opt.Size
	lineHeight := 1.4 * size
	width := ts.opt.PageSize.URx - ts.opt.PageSize.LLx - 2*ts.opt.Margin

	for _, line := range wrap(ts.body, size, width, text) {
		if ts.page == nil || ts.y-lineHeight < ts.opt.Margin {
			err := ts.newPage()
			if err != nil {
				return err
			}
		}
		ts.y -= lineHeight
		err := ts.page.ShowText(ts.key, ts.body, size, ts.opt.Margin, ts.y, line)
		if err != nil {
			return err
		}
	}
	ts.y -= 0.5 * lineHeight
	return nil
}

func (ts *typesetter) newPage() error {
	err := ts.finishPage()
	if err != nil {
		return err
	}

	n := ts.tree.NumPages()
	ts.tree.Grow(1)
	ts.page, err = ts.tree.NewPage(n)
	if err != nil {
		return err
	}
	ts.y = ts.opt.PageSize.URy - ts.opt.Margin

	if ts.gsName != "" {
		stm := ts.page.Content()
		_, err = fmt.Fprintf(stm, "q\n%s gs\n", pdf.Format(ts.gsName))
		if err != nil {
			return err
		}
		size := 4 * ts.opt.Size
		x := ts.opt.Margin
		y := (ts.opt.PageSize.LLy + ts.opt.PageSize.URy) / 2
		err = ts.page.ShowText(ts.boldKey, ts.bold, size, x, y, ts.opt.Watermark)
		if err != nil {
			return err
		}
		_, err = stm.WriteString("Q\n")
		if err != nil {
			return err
		}
	}
	return nil
}

// finishPage writes the current page, if any.
func (ts *typesetter) finishPage() error {
	if ts.page == nil {
		return nil
	}
	err := ts.page.Finish()
	if err != nil {
		return err
	}
	ts.page = nil
	return ts.d.Output()
}

// wrap breaks text into lines of at most the given width.  Words which
// are longer than a line are placed on a line of their own.
func wrap(f font.Typeface, size, width float64, text string) []string {
	var lines []string
	var cur string
	for _, word := range strings.Fields(text) {
		candidate := word
		if cur != "" {
			candidate = cur + " " + word
		}
		if cur != "" && font.TextWidth(f, candidate)*size/1000 > width {
			lines = append(lines, cur)
			cur = word
		} else {
			cur = candidate
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
