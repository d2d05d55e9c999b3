package entry

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"logentry/internal/fileutil"
)

// MaxTitleLength is the longest title, in characters, the server accepts.
const MaxTitleLength = 255

// ErrTitleTooLong is returned by Encode for titles over MaxTitleLength.
var ErrTitleTooLong = fmt.Errorf("title exceeds %d characters", MaxTitleLength)

type xmlEntry struct {
	XMLName       xml.Name        `xml:"Logentry"`
	Created       string          `xml:"created"`
	Logbooks      []string        `xml:"Logbooks>logbook"`
	Title         string          `xml:"title"`
	Body          *xmlBody        `xml:"body,omitempty"`
	EntryMakers   []xmlEntryMaker `xml:"Entrymakers>Entrymaker,omitempty"`
	Tags          []string        `xml:"Tags>tag,omitempty"`
	References    []xmlReference  `xml:"References>reference,omitempty"`
	Notifications []string        `xml:"Notifications>email,omitempty"`
	Attachments   []xmlAttachment `xml:"Attachments>Attachment,omitempty"`
}

type xmlBody struct {
	Type string `xml:"type,attr"`
	Text string `xml:",cdata"`
}

type xmlEntryMaker struct {
	Username string `xml:"username"`
}

type xmlReference struct {
	Type   string `xml:"type,attr"`
	Target string `xml:",chardata"`
}

type xmlAttachment struct {
	Caption  *string `xml:"caption"`
	Type     string  `xml:"type"`
	Filename string  `xml:"filename"`
	Data     xmlData `xml:"data"`
}

type xmlData struct {
	Encoding string `xml:"encoding,attr"`
	Value    string `xml:",chardata"`
}

// Encode writes req as an indented Logentry XML document. Attachment files
// are read and embedded as base64.
func Encode(w io.Writer, req *Request, created time.Time) error {
	if req == nil {
		return errors.New("encode entry: nil request")
	}
	if utf8.RuneCountInString(req.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if created.IsZero() {
		created = time.Now()
	}

	doc := xmlEntry{
		Created:       created.Format(time.RFC3339),
		Logbooks:      SplitLogbooks(req.Logbook),
		Title:         req.Title,
		Tags:          req.Tags,
		Notifications: req.Notify,
	}
	if req.Body != nil {
		doc.Body = &xmlBody{Type: req.BodyFormat.String(), Text: *req.Body}
	}
	for _, name := range req.EntryMakers {
		doc.EntryMakers = append(doc.EntryMakers, xmlEntryMaker{Username: name})
	}
	for _, ref := range req.References {
		doc.References = append(doc.References, xmlReference{Type: ref.Kind, Target: ref.Target})
	}
	for _, att := range req.Attachments {
		data, err := fileutil.EncodeBase64(att.Path)
		if err != nil {
			return &IOError{Op: "attach", Path: att.Path, Err: err}
		}
		item := xmlAttachment{
			Type:     contentType(att.Path),
			Filename: filepath.Base(att.Path),
			Data:     xmlData{Encoding: "base64", Value: data},
		}
		if att.Caption.Present {
			caption := att.Caption.Text
			item.Caption = &caption
		}
		doc.Attachments = append(doc.Attachments, item)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// SplitLogbooks breaks a joined logbook string into trimmed, non-empty names.
func SplitLogbooks(joined string) []string {
	var out []string
	for _, name := range strings.Split(joined, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func contentType(path string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
