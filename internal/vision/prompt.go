package vision

// DocumentPrompt asks the model to read a Ukrainian vehicle registration
// certificate (техпаспорт) and answer with a single JSON object.
const DocumentPrompt = `You read photos of Ukrainian vehicle registration certificates (свідоцтво про реєстрацію ТЗ, техпаспорт).
Extract the following fields and answer with ONE JSON object only, no prose:

{
  "brand": "manufacturer in Latin upper case, e.g. BMW, TOYOTA, VOLKSWAGEN (field D.1)",
  "model": "commercial model, e.g. X3, CAMRY (field D.3)",
  "year": 2015,
  "engine_volume_cc": 1998,
  "fuel_type": "gasoline | diesel | electric | lpg | empty if unknown (field P.3)",
  "confidence": 0,
  "error": ""
}

Rules:
- engine_volume_cc is the engine displacement in cubic centimetres from field P.1. Convert litres to cm³ (1.998 -> 1998).
- year is the year of manufacture (field B.2 or the year in field B). Use 0 when it is not visible.
- Use "" or 0 for any field you cannot read with reasonable certainty. Never guess.
- confidence is your certainty from 0 to 100 that the extracted fields are correct.
- If the photo is not a vehicle document or is unreadable, leave the fields empty and put a short explanation in Russian into "error", e.g. "Не удалось распознать документ на фото".`
