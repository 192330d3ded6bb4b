// Package file reads objects from Amazon S3 (or an S3-compatible service) and
// manages local scratch directories for files pulled from it.
//
// S3Storage is read-only towards the bucket: ListObjects walks every page under
// a prefix, Download and DownloadFile stream an object body, and PresignGet
// returns a time-limited GET URL so browsers fetch bytes directly from storage.
//
//	storage, err := file.NewS3Storage(ctx, file.S3Config{
//		Bucket:      "my-bucket",
//		Region:      "us-east-1",
//		AccessKeyID: "key",
//		SecretKey:   "secret",
//	})
//	objects, err := storage.ListObjects(ctx, "docs/12345/")
//	url, err := storage.PresignGet(ctx, objects[0].Key, time.Hour)
//
// Scratch is a private temporary directory. All paths it hands out are
// confined to it, and Remove deletes it together with its contents:
//
//	scratch, err := file.NewScratch("", "archive-*")
//	defer scratch.Remove()
//	dst, err := scratch.Path("files", "a.pdf")
//
// S3 failures are classified into the sentinel errors in errors.go
// (ErrFileNotFound, ErrAccessDenied, ErrServiceUnavailable, ...) so callers can
// branch with errors.Is without importing the AWS SDK.
package file
