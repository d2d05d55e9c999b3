package entry

// PairAttachments aligns paths with captions by index. The result always has
// len(paths) elements. With no caption list every caption is omitted; with a
// shorter list the trailing attachments get omitted captions; captions past
// the last attachment are ignored.
func PairAttachments(paths []string, captions []string) []Attachment {
	if len(paths) == 0 {
		return nil
	}
	pairs := make([]Attachment, len(paths))
	for i, path := range paths {
		pairs[i].Path = path
		if i < len(captions) {
			pairs[i].Caption = CaptionOf(captions[i])
		}
	}
	return pairs
}
