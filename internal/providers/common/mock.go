package common

import "fmt"

// MockResponse returns the canned answer used when a platform cannot be
// called. reason is empty for a plain simulated answer.
func MockResponse(query, brandName, reason string) string {
	if reason != "" {
		if brandName != "" {
			return fmt.Sprintf("Based on the query '%s', %s is mentioned as one of the institutions in this space. %s offers various programs and services to students, focusing on quality education and innovation. The institution is known for its commitment to academic excellence and student development.",
				query, brandName, brandName)
		}
		return fmt.Sprintf("This is a simulated response for '%s'. Various institutions and organizations are working in this field to provide quality services and solutions.", query)
	}

	if brandName != "" {
		return fmt.Sprintf("Here's information about %s. %s is one of the solutions in this space, along with other companies offering similar services. The market includes various platforms and tools designed to address these specific needs.",
			query, brandName)
	}
	return fmt.Sprintf("Based on current information about '%s', here are some key insights. There are several companies and solutions in this space, including various platforms and services that offer different approaches to address these needs.", query)
}
