package analysis

import "strings"

const compactResume = `Jane Doe
jane.doe@example.com
(555) 123-4567
Experience
- Led 5 engineers
- Built 3 services
- Managed $2M budget
- Developed 4 APIs
- Created 2 tools
- Implemented 6 fixes
- Cut latency 30%
- Shipped 8 releases
- Saved 10% cost
- Hired 12 people
Education
BS Computer Science, 2015
Skills
Go, SQL, Linux, Docker, Kafka`

const backendJob = `Senior Backend Engineer
We are looking for an engineer with strong Python experience.
You will build Python services, package them with Docker and deploy Docker images to Kubernetes.
Experience with PostgreSQL, Redis and Terraform is a plus. Python and Docker are required.`

const javaResume = `John Smith
john@example.org
Java developer with Spring experience, kubernetes operator work, terraform modules.`

// tabbedShortResume has enough lines to avoid the structure check but is short and uses tabs.
func tabbedShortResume() string {
	lines := make([]string, 0, 16)
	for i := range 16 {
		lines = append(lines, "Item "+string(rune('a'+i))+"\tvalue")
	}
	return strings.Join(lines, "\n")
}
