package paintdry

// Image is the metadata of an uploaded picture. The file itself lives under
// the uploads directory of the static dir.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// URL returns the public path of the image.
func (img Image) URL() string {
	return "/public/" + uploadsSubdir + "/" + img.Filename
}
