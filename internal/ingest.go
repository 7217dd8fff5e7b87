package internal

import "io"

// IngestTranscript runs the streaming pipeline over a transcript source:
// each line is decoded, classified, and fed to the aggregator; the
// assembled conversation comes back in transcript order.
func IngestTranscript(r io.Reader) ([]ConversationEntry, error) {
	agg := NewAggregator()
	err := ReadTranscript(r, func(line int, rec RawRecord) {
		for _, entry := range Classify(rec) {
			agg.Add(entry)
		}
	})
	if err != nil {
		return nil, err
	}
	return agg.Finish(), nil
}
