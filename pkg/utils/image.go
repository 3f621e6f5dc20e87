package utils

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidImageData = errors.New("图片数据格式不正确")

// 支持的图片类型与文件后缀映射
var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// DecodeBase64Image 解析 data URI 形式的 base64 图片
// 期望格式：data:image/png;base64,iVBORw0KGgo...
// 返回内容类型、文件后缀与解码后的字节
func DecodeBase64Image(data string) (contentType, ext string, payload []byte, err error) {
	if !strings.HasPrefix(data, "data:") {
		return "", "", nil, ErrInvalidImageData
	}

	meta, encoded, found := strings.Cut(data[len("data:"):], ",")
	if !found {
		return "", "", nil, ErrInvalidImageData
	}

	contentType, encoding, found := strings.Cut(meta, ";")
	if !found || encoding != "base64" {
		return "", "", nil, ErrInvalidImageData
	}

	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", "", nil, ErrInvalidImageData
	}

	payload, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", nil, ErrInvalidImageData
	}
	if len(payload) == 0 {
		return "", "", nil, ErrInvalidImageData
	}

	return contentType, ext, payload, nil
}
