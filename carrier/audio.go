package carrier

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/bogem/id3v2"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tosone/minimp3"
)

const (
	wavFormatPCM = 1
	mp3BitDepth  = 16
)

// Audio carriers use the least significant byte of every sample, so the
// two bits the codec touches are the quietest bits of the signal.

func decodeWAV(data []byte) (*Carrier, error) {
	d := wav.NewDecoder(bytes.NewReader(data))
	if !d.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file")
	}
	if d.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("unsupported WAV encoding %d: only integer PCM can carry a payload", d.WavAudioFormat)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode WAV: %w", err)
	}
	return fromPCM(buf, int(d.BitDepth), "wav"), nil
}

func decodeMP3(data []byte) (*Carrier, error) {
	dec, pcm, err := minimp3.DecodeFull(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}
	defer dec.Close()

	if dec.Channels == 0 || len(pcm) < 2 {
		return nil, fmt.Errorf("MP3 contains no audio frames")
	}

	// minimp3 yields interleaved little-endian 16-bit samples.
	samples := make([]int, len(pcm)/2)
	for i := range samples {
		samples[i] = int(int16(uint16(pcm[2*i]) | uint16(pcm[2*i+1])<<8))
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: dec.Channels, SampleRate: dec.SampleRate},
		Data:           samples,
		SourceBitDepth: mp3BitDepth,
	}
	c := fromPCM(buf, mp3BitDepth, "mp3")
	if frame, err := firstMP3Frame(data); err == nil {
		c.Bitrate = frame.Bitrate
	}

	if bytes.HasPrefix(data, []byte("ID3")) {
		if tag, err := id3v2.ParseReader(bytes.NewReader(data), id3v2.Options{Parse: true}); err == nil {
			c.Title = tag.Title()
			c.Artist = tag.Artist()
		}
	}
	return c, nil
}

func fromPCM(buf *audio.IntBuffer, bitDepth int, format string) *Carrier {
	samples := make([]byte, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = byte(s)
	}
	return &Carrier{
		Kind:       KindAudio,
		Format:     format,
		Components: buf.Format.NumChannels,
		SampleRate: buf.Format.SampleRate,
		BitDepth:   bitDepth,
		pcm:        buf,
		samples:    samples,
	}
}

// syncPCM folds the carrier bytes back into the low byte of each sample.
func (c *Carrier) syncPCM() {
	for i, b := range c.samples {
		c.pcm.Data[i] = c.pcm.Data[i]&^0xFF | int(b)
	}
}

func (c *Carrier) writeWAV(w io.WriteSeeker) error {
	c.syncPCM()

	enc := wav.NewEncoder(w, c.SampleRate, c.BitDepth, c.Components, wavFormatPCM)
	if err := enc.Write(c.pcm); err != nil {
		return fmt.Errorf("failed to encode WAV: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to close WAV encoder: %w", err)
	}
	return nil
}

// encodeWAV streams the WAV to w. The encoder needs to seek back to patch
// the RIFF sizes, so it goes through a temporary file.
func (c *Carrier) encodeWAV(w io.Writer) error {
	tmp, err := os.CreateTemp("", "binimg_*.wav")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if err := c.writeWAV(tmp); err != nil {
		return err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind WAV data: %w", err)
	}
	if _, err := io.Copy(w, tmp); err != nil {
		return fmt.Errorf("failed to copy WAV data: %w", err)
	}
	return nil
}
