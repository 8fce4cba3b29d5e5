package catalog

import "github.com/dmitrijs2005/portal/internal/client/models"

const (
	opGetCharacters = "GetCharacters"
	opGetCharacter  = "GetCharacter"
)

const queryGetCharacters = `query GetCharacters($page: Int) {
  characters(page: $page) {
    info { count pages next prev }
    results {
      id name status species type gender image
      origin { id name }
      location { id name }
    }
  }
}`

const queryGetCharacter = `query GetCharacter($id: ID!) {
  character(id: $id) {
    id name status species type gender image
    origin { id name type dimension }
    location { id name type dimension }
    episode { id name episode air_date }
    created
  }
}`

type charactersData struct {
	Characters *models.CharacterPage `json:"characters"`
}

type characterData struct {
	Character *models.CharacterDetail `json:"character"`
}
