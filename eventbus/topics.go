package eventbus

// Topic declarations, one place so they can move to config later.

var (
	// TopicRunRecorded carries one message per persisted classification Run.
	TopicRunRecorded = NewTopic("tickertag.classification.run")

	// TopicBatchSummary carries one message per completed batch invocation.
	TopicBatchSummary = NewTopic("tickertag.classification.batch")
)

var AllTopics = []Topic{
	TopicRunRecorded,
	TopicBatchSummary,
}
