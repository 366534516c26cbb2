// Package audio 提供 Ebitengine 不支持的音频格式解码
//
// 目前只有 Sun/NeXT .au 格式（μ-law 和 16 位线性 PCM），
// 输出为 Ebitengine 需要的 16 位小端立体声 PCM。
package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	auMagic         = 0x2e736e64 // ".snd"（大端）
	auHeaderSize    = 24
	auEncodingULaw  = 1 // 8 位 μ-law
	auEncodingPCM16 = 3 // 16 位线性 PCM（大端）
)

// ErrInvalidAU 文件不是合法的 .au 音频
var ErrInvalidAU = errors.New("invalid AU audio")

// auHeader .au 文件头（所有字段均为大端）
type auHeader struct {
	Magic      uint32
	DataOffset uint32
	DataSize   uint32 // 0xFFFFFFFF 表示未知
	Encoding   uint32
	SampleRate uint32
	Channels   uint32
}

// Stream 解码后的 PCM 数据流
// 实现 io.ReadSeeker，可直接交给 audio.Context.NewPlayer（采样率一致时）
// 或 audio.Resample
type Stream struct {
	*bytes.Reader
	sampleRate int
}

// SampleRate 返回原始采样率（Hz）
func (s *Stream) SampleRate() int {
	return s.sampleRate
}

// Length 返回 PCM 数据总字节数
func (s *Stream) Length() int64 {
	return s.Size()
}

// DecodeAU 解码 .au 音频
//
// 参数：
//   - r: .au 文件内容
//
// 返回：
//   - *Stream: 16 位小端立体声 PCM
//   - error: 文件头非法或编码不支持时返回包装了 ErrInvalidAU 的错误
func DecodeAU(r io.Reader) (*Stream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read AU data: %w", err)
	}
	if len(data) < auHeaderSize {
		return nil, fmt.Errorf("%w: file too short (%d bytes)", ErrInvalidAU, len(data))
	}

	var header auHeader
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAU, err)
	}
	if header.Magic != auMagic {
		return nil, fmt.Errorf("%w: bad magic 0x%08x", ErrInvalidAU, header.Magic)
	}
	if header.Channels < 1 || header.Channels > 2 {
		return nil, fmt.Errorf("%w: unsupported channel count %d", ErrInvalidAU, header.Channels)
	}
	if header.SampleRate == 0 {
		return nil, fmt.Errorf("%w: zero sample rate", ErrInvalidAU)
	}

	offset := int(header.DataOffset)
	if offset < auHeaderSize || offset > len(data) {
		return nil, fmt.Errorf("%w: data offset %d out of range", ErrInvalidAU, offset)
	}
	payload := data[offset:]
	if header.DataSize != 0xFFFFFFFF && int(header.DataSize) < len(payload) {
		payload = payload[:header.DataSize]
	}

	var samples []int16
	switch header.Encoding {
	case auEncodingULaw:
		samples = make([]int16, len(payload))
		for i, u := range payload {
			samples[i] = mulawToLinear(u)
		}
	case auEncodingPCM16:
		samples = make([]int16, len(payload)/2)
		for i := range samples {
			samples[i] = int16(binary.BigEndian.Uint16(payload[i*2:]))
		}
	default:
		return nil, fmt.Errorf("%w: unsupported encoding %d", ErrInvalidAU, header.Encoding)
	}

	return &Stream{
		Reader:     bytes.NewReader(toStereoLE(samples, int(header.Channels))),
		sampleRate: int(header.SampleRate),
	}, nil
}

// mulawToLinear G.711 μ-law 解码
func mulawToLinear(u byte) int16 {
	u = ^u
	exponent := (u >> 4) & 0x07
	mantissa := u & 0x0F
	sample := ((int16(mantissa) << 3) + 0x84) << exponent
	sample -= 0x84
	if u&0x80 != 0 {
		return -sample
	}
	return sample
}

// toStereoLE 把交错采样转换为 16 位小端立体声，单声道复制到左右声道
func toStereoLE(samples []int16, channels int) []byte {
	frames := len(samples) / channels
	out := make([]byte, frames*4)
	for i := 0; i < frames; i++ {
		left := samples[i*channels]
		right := left
		if channels == 2 {
			right = samples[i*channels+1]
		}
		binary.LittleEndian.PutUint16(out[i*4:], uint16(left))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(right))
	}
	return out
}
