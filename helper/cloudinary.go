package helper

import (
	"context"
	"log"
	"mime/multipart"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

func InitCloudinary() *cloudinary.Cloudinary {
	cld, err := cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		log.Fatalf("Cloudinary init failed: %v", err)
	}
	return cld
}

// UploadRefundEvidence đẩy ảnh bằng chứng refund lên cloudinary,
// trả về secure url để gắn vào imageUrls của refund request
func UploadRefundEvidence(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	cld := InitCloudinary()
	res, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder: "refund-evidence",
	})
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}
