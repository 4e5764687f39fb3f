package main

import (
	"os"

	"github.com/CartoonFan/flake"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mewkiz/pkg/osutil"
	"github.com/mewkiz/pkg/pathutil"
	"github.com/pkg/errors"
)

// encodeFile reads wavPath and writes the corresponding FLAC file, sized and
// named by the CLI flags registered in main.go.
func encodeFile(wavPath string) error {
	r, err := os.Open(wavPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer r.Close()

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return errors.Errorf("invalid WAV file %q", wavPath)
	}
	sampleRate, nchannels, bps := int(dec.SampleRate), int(dec.NumChans), int(dec.BitDepth)

	flacPath := flagOutput
	if flacPath == "" {
		flacPath = pathutil.TrimExt(wavPath) + ".flac"
	}
	if !flagForce && osutil.Exists(flacPath) {
		return errors.Errorf("FLAC file %q already present; use -f to force overwrite", flacPath)
	}
	w, err := os.Create(flacPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer w.Close()

	config, err := buildConfig(sampleRate, nchannels, bps)
	if err != nil {
		return errors.WithStack(err)
	}

	enc, header, err := flake.NewEncoder(config)
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err := w.Write(header); err != nil {
		return errors.WithStack(err)
	}

	blockSize := enc.StreamInfo().BlockSizeMax
	if err := dec.FwdToPCM(); err != nil {
		return errors.WithStack(err)
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: nchannels,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, nchannels*blockSize),
		SourceBitDepth: bps,
	}

	nFrames := 0
	for !dec.EOF() {
		n, err := dec.PCMBuffer(buf)
		if err != nil {
			return errors.WithStack(err)
		}
		if n == 0 {
			break
		}
		nSamplesPerChannel := n / nchannels
		channels := make([][]int32, nchannels)
		for c := range channels {
			channels[c] = make([]int32, nSamplesPerChannel)
		}
		for i := 0; i < n; i++ {
			channels[i%nchannels][i/nchannels] = int32(buf.Data[i])
		}

		frameBytes, err := enc.EncodeFrame(channels)
		if err != nil {
			return errors.WithStack(err)
		}
		if _, err := w.Write(frameBytes); err != nil {
			return errors.WithStack(err)
		}
		nFrames++
		progressf("frame %d: %d samples/channel", nFrames, nSamplesPerChannel)
	}

	if _, err := enc.Close(); err != nil {
		return errors.WithStack(err)
	}

	finalInfoBuf := make([]byte, 34)
	if err := flake.WriteStreamInfo(enc.StreamInfo(), finalInfoBuf); err != nil {
		return errors.WithStack(err)
	}
	// STREAMINFO starts 8 bytes into the stream: 4 for "fLaC", 4 for the
	// metadata block header.
	if _, err := w.WriteAt(finalInfoBuf, 8); err != nil {
		return errors.WithStack(err)
	}

	progressf("wrote %q: %d frames", flacPath, nFrames)
	return nil
}

// buildConfig assembles a flake.EncoderConfig from the stream's WAV
// parameters and the CLI's override flags.
func buildConfig(sampleRate, nchannels, bps int) (flake.EncoderConfig, error) {
	config := flake.EncoderConfig{
		Channels:         nchannels,
		SampleRate:       sampleRate,
		BitsPerSample:    bps,
		CompressionLevel: flagLevel,
	}

	if flagBlockSize > 0 {
		config = config.WithBlockSize(flagBlockSize)
	}
	if flagPredType >= 0 {
		config = config.WithPrediction(flake.PredictionType(flagPredType))
	}
	if min, max, ok, err := parseOrderRange(flagOrder); err != nil {
		return config, errors.Wrap(err, "parsing -l order range")
	} else if ok {
		config = config.WithOrder(min, max)
	}
	if flagOrderMtd >= 0 {
		config = config.WithOrderSelect(flake.OrderMethod(flagOrderMtd))
	}
	if min, max, ok, err := parseOrderRange(flagPartition); err != nil {
		return config, errors.Wrap(err, "parsing -r partition range")
	} else if ok {
		config = config.WithPartition(min, max)
	}
	if flagStereo >= 0 {
		config = config.WithStereo(flake.StereoMethod(flagStereo))
	}
	if flagPadding > 0 {
		config = config.WithPadding(flagPadding)
	}
	config.VariableBlockSize = flagVariable != 0

	return config, nil
}
