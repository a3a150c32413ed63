package source

import "context"

// StaticTools serves a hand-curated list of well-known AI tools. There is
// no live "tools directory" feed to poll, so the data is code-embedded;
// the adapter has no network call and no failure mode.
type StaticTools struct{}

// NewStaticTools creates the static tools adapter.
func NewStaticTools() *StaticTools { return &StaticTools{} }

func (s *StaticTools) Name() string { return "tools" }

func (s *StaticTools) Fetch(ctx context.Context) []Candidate {
	return []Candidate{
		{
			Title:       "OpenAI ChatGPT - Conversational AI Assistant",
			Description: "Advanced language model for conversations, writing, coding, and creative tasks with human-like responses.",
			Category:    CategoryTools,
			ImageURL:    "https://images.unsplash.com/photo-1677442136019-21780ecad995?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://chat.openai.com",
		},
		{
			Title:       "Google Colab - Free GPU/TPU for ML",
			Description: "Cloud-based Jupyter notebook environment with free access to GPUs and TPUs for machine learning experiments.",
			Category:    CategoryTools,
			ImageURL:    "https://images.unsplash.com/photo-1516321318423-f06f85e504b3?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://colab.research.google.com",
		},
		{
			Title:       "Hugging Face Transformers",
			Description: "Open-source library providing thousands of pre-trained models for natural language processing tasks.",
			Category:    CategoryTools,
			ImageURL:    "https://images.unsplash.com/photo-1551288049-bebda4e38f71?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://huggingface.co/transformers",
		},
		{
			Title:       "TensorFlow - Open Source ML Platform",
			Description: "End-to-end open source platform for machine learning with comprehensive tools and libraries.",
			Category:    CategoryTools,
			ImageURL:    "https://images.unsplash.com/photo-1515879218367-8466d910aaa4?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://tensorflow.org",
		},
		{
			Title:       "PyTorch - Dynamic Neural Networks",
			Description: "Python-first framework for deep learning research with strong GPU acceleration and dynamic computation graphs.",
			Category:    CategoryTools,
			ImageURL:    "https://images.unsplash.com/photo-1555949963-aa79dcee981c?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://pytorch.org",
		},
	}
}
